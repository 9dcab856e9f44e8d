package coordinator

import (
	"context"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/state"

	"go.uber.org/zap"
)

// AssignTrainerFlow drives the "assign trainer to member" modal. On
// success the members collection is re-listed; the flow never writes the
// assignment into cached state itself.
type AssignTrainerFlow struct {
	api     *client.Client
	members *state.Collection[domain.Member]
	logger  *zap.Logger

	phase      Phase
	memberID   string
	memberName string
	candidates []domain.Trainer
	selected   string
	lastErr    error
}

func NewAssignTrainerFlow(api *client.Client, members *state.Collection[domain.Member], logger *zap.Logger) *AssignTrainerFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignTrainerFlow{api: api, members: members, logger: logger}
}

// Open starts the flow for one member, fetching a fresh trainer candidate
// list. The member's current trainer, if any, becomes the preselection.
func (f *AssignTrainerFlow) Open(ctx context.Context, member domain.Member) error {
	trainers, err := f.api.ListTrainers(ctx)
	if err != nil {
		return err
	}
	f.phase = Selecting
	f.memberID = member.ID
	f.memberName = member.Name
	f.candidates = trainers
	f.selected = ""
	f.lastErr = nil
	if member.Trainer != nil {
		f.selected = member.Trainer.ID
	}
	return nil
}

// Select records the chosen trainer. Only fetched candidates are valid.
func (f *AssignTrainerFlow) Select(trainerID string) error {
	if f.phase != Selecting {
		return ErrFlowClosed
	}
	for _, t := range f.candidates {
		if t.ID == trainerID {
			f.selected = trainerID
			return nil
		}
	}
	return notCandidate(trainerID)
}

// Submit performs the assignment. Success closes the modal and re-lists
// the members collection; failure returns to Selecting with the selection
// retained and the error surfaced through Err.
func (f *AssignTrainerFlow) Submit(ctx context.Context) error {
	if f.phase != Selecting {
		return ErrFlowClosed
	}
	if f.selected == "" {
		return ErrNoSelection
	}

	f.phase = Assigning
	err := f.members.Mutate(ctx,
		func(ctx context.Context) error {
			return f.api.AssignTrainer(ctx, f.memberID, f.selected)
		},
		func(ctx context.Context) ([]domain.Member, error) {
			return f.api.ListMembers(ctx)
		})
	if err != nil {
		f.phase = Selecting
		f.lastErr = err
		f.logger.Warn("trainer assignment failed",
			zap.String("member", f.memberID),
			zap.String("trainer", f.selected),
			zap.Error(err))
		return err
	}

	f.logger.Info("trainer assigned",
		zap.String("member", f.memberID),
		zap.String("trainer", f.selected))
	f.reset()
	return nil
}

// Close abandons the flow.
func (f *AssignTrainerFlow) Close() { f.reset() }

func (f *AssignTrainerFlow) reset() {
	*f = AssignTrainerFlow{api: f.api, members: f.members, logger: f.logger}
}

func (f *AssignTrainerFlow) Phase() Phase                 { return f.phase }
func (f *AssignTrainerFlow) MemberName() string           { return f.memberName }
func (f *AssignTrainerFlow) Candidates() []domain.Trainer { return f.candidates }
func (f *AssignTrainerFlow) Selected() string             { return f.selected }
func (f *AssignTrainerFlow) Err() error                   { return f.lastErr }
