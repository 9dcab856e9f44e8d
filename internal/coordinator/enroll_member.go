package coordinator

import (
	"context"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/state"

	"go.uber.org/zap"
)

// EnrollMemberFlow drives the "add member to schedule" workflow. The
// backend arbitrates roster dedup, so enrolling an already-present member
// is an accepted idempotent replay; the refetched roster simply comes
// back unchanged.
type EnrollMemberFlow struct {
	api       *client.Client
	schedules *state.Collection[domain.Schedule]
	// list re-fetches the schedules with whatever filter the owning view
	// currently has applied.
	list   state.ListFunc[domain.Schedule]
	logger *zap.Logger

	phase      Phase
	scheduleID string
	candidates []domain.Member
	selected   string
	lastErr    error
}

func NewEnrollMemberFlow(api *client.Client, schedules *state.Collection[domain.Schedule], list state.ListFunc[domain.Schedule], logger *zap.Logger) *EnrollMemberFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollMemberFlow{api: api, schedules: schedules, list: list, logger: logger}
}

// Open starts the flow for one schedule, fetching a fresh member
// candidate list.
func (f *EnrollMemberFlow) Open(ctx context.Context, schedule domain.Schedule) error {
	members, err := f.api.ListMembers(ctx)
	if err != nil {
		return err
	}
	f.phase = Selecting
	f.scheduleID = schedule.ID
	f.candidates = members
	f.selected = ""
	f.lastErr = nil
	return nil
}

// Select records the member to enroll.
func (f *EnrollMemberFlow) Select(memberID string) error {
	if f.phase != Selecting {
		return ErrFlowClosed
	}
	for _, m := range f.candidates {
		if m.ID == memberID {
			f.selected = memberID
			return nil
		}
	}
	return notCandidate(memberID)
}

// Submit enrolls the selected member, then re-lists the schedules.
func (f *EnrollMemberFlow) Submit(ctx context.Context) error {
	if f.phase != Selecting {
		return ErrFlowClosed
	}
	if f.selected == "" {
		return ErrNoSelection
	}

	f.phase = Assigning
	err := f.schedules.Mutate(ctx,
		func(ctx context.Context) error {
			return f.api.AddMemberToSchedule(ctx, f.scheduleID, f.selected)
		},
		f.list)
	if err != nil {
		f.phase = Selecting
		f.lastErr = err
		f.logger.Warn("enrollment failed",
			zap.String("schedule", f.scheduleID),
			zap.String("member", f.selected),
			zap.Error(err))
		return err
	}

	f.logger.Info("member enrolled",
		zap.String("schedule", f.scheduleID),
		zap.String("member", f.selected))
	f.reset()
	return nil
}

// Close abandons the flow.
func (f *EnrollMemberFlow) Close() { f.reset() }

func (f *EnrollMemberFlow) reset() {
	*f = EnrollMemberFlow{api: f.api, schedules: f.schedules, list: f.list, logger: f.logger}
}

func (f *EnrollMemberFlow) Phase() Phase                { return f.phase }
func (f *EnrollMemberFlow) ScheduleID() string          { return f.scheduleID }
func (f *EnrollMemberFlow) Candidates() []domain.Member { return f.candidates }
func (f *EnrollMemberFlow) Selected() string            { return f.selected }
func (f *EnrollMemberFlow) Err() error                  { return f.lastErr }
