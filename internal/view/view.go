// Package view implements the role-scoped views of the console. A view
// mounts only after its gate resolves to Allowed; until then nothing of
// the protected content is fetched or rendered.
package view

import (
	"errors"
	"fmt"
	"io"

	"gymdesk/console/internal/gate"
	"gymdesk/console/internal/session"
)

// ErrDenied is returned when a view's gate denies access. The caller
// navigates to the gate's redirect target and discards the view.
var ErrDenied = errors.New("access denied")

// mount resolves the gate against the current session. The neutral
// loading line is the only output permitted before resolution.
func mount(g *gate.Gate, sessions *session.Store, out io.Writer) error {
	if g.State() == gate.Pending {
		fmt.Fprintln(out, "Loading...")
		g.Resolve(sessions.Current())
	}
	if g.State() != gate.Allowed {
		return fmt.Errorf("%w: redirect to %s", ErrDenied, g.RedirectTarget())
	}
	return nil
}
