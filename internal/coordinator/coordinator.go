// Package coordinator drives the cross-entity relationship workflows:
// member↔trainer assignment and schedule↔member enrollment. Each flow is
// a modal-scoped state machine owned by a single view; none of them patch
// previously rendered join data — the authoritative refresh does that.
package coordinator

import (
	"errors"
	"fmt"
)

// Phase is the modal state machine:
//
//	closed → selecting → assigning → closed (success)
//	                   ↘ selecting (failure, error surfaced, selection retained)
type Phase int

const (
	Closed Phase = iota
	Selecting
	Assigning
)

func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Selecting:
		return "selecting"
	case Assigning:
		return "assigning"
	}
	return "unknown"
}

var (
	ErrFlowClosed   = errors.New("flow is not open")
	ErrNoSelection  = errors.New("no target selected")
	ErrNotCandidate = errors.New("selection is not in the candidate list")
)

func notCandidate(id string) error {
	return fmt.Errorf("%w: %s", ErrNotCandidate, id)
}
