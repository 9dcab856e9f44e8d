// Package gate implements the per-view authorization check deciding
// whether the current session may render a role-scoped view.
package gate

import (
	"gymdesk/console/internal/domain"

	"go.uber.org/zap"
)

// LoginPath is where denied access attempts are redirected.
const LoginPath = "/login"

// State is the gate's three-state machine: a view instance starts Pending,
// resolves exactly once to Allowed or Denied, and never goes back.
type State int

const (
	Pending State = iota
	Allowed
	Denied
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Gate guards one view instance. While Pending the caller renders a
// neutral loading indicator and must not mount the protected subtree;
// only after Resolve returns Allowed may the view's internals mount.
type Gate struct {
	required domain.Role
	state    State
	logger   *zap.Logger
}

func New(required domain.Role, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{required: required, state: Pending, logger: logger}
}

// Required returns the role this gate protects.
func (g *Gate) Required() domain.Role { return g.required }

// State returns the current resolution state.
func (g *Gate) State() State { return g.state }

// Resolve settles the gate against the given session. Denies when no
// session exists or the roles differ. Resolution is terminal for this
// view instance: later calls return the settled state unchanged, so a
// cached Allowed can never be re-purposed for a different session and a
// Denied never flips open.
func (g *Gate) Resolve(sess *domain.Session) State {
	if g.state != Pending {
		return g.state
	}
	if sess == nil || sess.Role != g.required {
		g.state = Denied
		got := "none"
		if sess != nil {
			got = sess.Role.String()
		}
		g.logger.Info("access denied",
			zap.String("required", g.required.String()),
			zap.String("role", got))
		return g.state
	}
	g.state = Allowed
	return g.state
}

// RedirectTarget returns where to navigate after a denial, discarding any
// partially loaded view state.
func (g *Gate) RedirectTarget() string { return LoginPath }
