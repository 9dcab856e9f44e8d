package domain

import "time"

// Identity is the slice of the underlying Manager/Trainer/Member record
// the login response exposes.
type Identity struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the authenticated identity and credential bound to one role
// for the current use of the system. Created on successful login,
// destroyed on logout or token invalidation; never persisted.
type Session struct {
	Role     Role
	Token    string
	Identity Identity
	// ExpiresAt is taken from the token's exp claim when present;
	// zero means the token carried no expiry.
	ExpiresAt time.Time
}

// Expired reports whether the session's token expiry has passed.
// A session without an expiry claim never expires locally; the backend
// remains the arbiter via 401 responses.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
