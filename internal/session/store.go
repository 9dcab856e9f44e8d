package session

import (
	"errors"
	"sync"

	"gymdesk/console/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

var (
	// ErrRoleMismatch means the token's role claim disagrees with the role
	// the user logged in as. Treated as a failed login.
	ErrRoleMismatch = errors.New("token role does not match requested role")
)

// jwtClaims mirrors the claim structure the backend puts in its tokens.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Store holds the authenticated session for the process lifetime. It is
// the single shared credential slot: every resource-client call reads it,
// and only login/logout mutate it.
type Store struct {
	mu      sync.Mutex
	current *domain.Session
	// epoch counts Clear calls. A login resolving against a stale epoch is
	// dropped, so a logout racing an in-flight login always wins.
	epoch   uint64
	onClear []func()
	logger  *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Epoch returns the current logout epoch. Snapshot it before issuing a
// login request and pass it to Start when the response arrives.
func (s *Store) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Start installs a freshly authenticated session. It returns false without
// installing anything if a Clear happened after the given epoch snapshot.
func (s *Store) Start(sess domain.Session, epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		s.logger.Info("discarding login that lost a race with logout",
			zap.String("role", sess.Role.String()))
		return false
	}
	installed := sess
	s.current = &installed
	s.logger.Info("session started",
		zap.String("role", sess.Role.String()),
		zap.String("identity", sess.Identity.ID))
	return true
}

// Clear destroys the session unconditionally. Registered OnClear hooks run
// afterwards so cached entity collections can purge themselves.
func (s *Store) Clear() {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	s.epoch++
	hooks := make([]func(), len(s.onClear))
	copy(hooks, s.onClear)
	s.mu.Unlock()

	if had {
		s.logger.Info("session cleared")
	}
	for _, h := range hooks {
		h()
	}
}

// Current returns the active session, or nil when logged out.
func (s *Store) Current() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	snapshot := *s.current
	return &snapshot
}

// Token returns the bearer credential of the active session.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return "", false
	}
	return s.current.Token, true
}

// OnClear registers a hook invoked whenever the session is destroyed.
func (s *Store) OnClear(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, hook)
}

// FromLogin builds a Session from a login response. The token is parsed
// without signature verification (the client never holds the secret) only
// to read the expiry and to cross-check the role claim against the role
// the user asked to log in as.
func FromLogin(role domain.Role, token string, identity domain.Identity) (domain.Session, error) {
	sess := domain.Session{
		Role:     role,
		Token:    token,
		Identity: identity,
	}

	claims := &jwtClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		// An opaque (non-JWT) token is still usable; the backend validates it.
		return sess, nil
	}
	if claims.Role != "" && claims.Role != role {
		return domain.Session{}, ErrRoleMismatch
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}
