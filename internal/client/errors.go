package client

import (
	"errors"
	"fmt"
)

// Error taxonomy for resource-client failures. Callers branch with
// errors.Is; the concrete message travels in the wrapped error.
var (
	// ErrAuth covers bad credentials and missing/expired/rejected tokens.
	ErrAuth = errors.New("authentication failed")
	// ErrValidation covers requests the backend (or the client's own
	// pre-dispatch checks) rejected as malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers stale ids, e.g. deleting an already-deleted record.
	ErrNotFound = errors.New("not found")
	// ErrNetwork covers requests that never completed.
	ErrNetwork = errors.New("network failure")
)

// ErrNoSession is the fail-fast error for a call attempted with no active
// session; nothing is sent. It matches ErrAuth under errors.Is.
var ErrNoSession = fmt.Errorf("%w: no active session", ErrAuth)
