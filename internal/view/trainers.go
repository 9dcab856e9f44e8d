package view

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/gate"
	"gymdesk/console/internal/session"
	"gymdesk/console/internal/state"

	"go.uber.org/zap"
)

// TrainersView is the manager's trainer administration view. Trainer
// passwords are set once at creation; the edit path has no password field.
type TrainersView struct {
	gate     *gate.Gate
	sessions *session.Store
	api      *client.Client
	out      io.Writer
	logger   *zap.Logger

	trainers *state.Collection[domain.Trainer]
}

func NewTrainersView(sessions *session.Store, api *client.Client, out io.Writer, logger *zap.Logger) *TrainersView {
	trainers := state.NewCollection(func(t domain.Trainer) string { return t.ID })
	sessions.OnClear(trainers.Purge)
	return &TrainersView{
		gate:     gate.New(domain.RoleManager, logger),
		sessions: sessions,
		api:      api,
		out:      out,
		logger:   logger,
		trainers: trainers,
	}
}

func (v *TrainersView) Mount(ctx context.Context) error {
	if err := mount(v.gate, v.sessions, v.out); err != nil {
		return err
	}
	if err := v.Refresh(ctx); err != nil {
		fmt.Fprintln(v.out, "Failed to fetch trainers")
		return err
	}
	v.Render()
	return nil
}

func (v *TrainersView) Refresh(ctx context.Context) error {
	return v.trainers.Refresh(ctx, v.api.ListTrainers)
}

func (v *TrainersView) Add(ctx context.Context, payload domain.TrainerCreate) error {
	return v.trainers.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.CreateTrainer(ctx, payload)
		return err
	}, v.api.ListTrainers)
}

func (v *TrainersView) Edit(ctx context.Context, id string, payload domain.TrainerUpdate) error {
	return v.trainers.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.UpdateTrainer(ctx, id, payload)
		return err
	}, v.api.ListTrainers)
}

func (v *TrainersView) Remove(ctx context.Context, id string) error {
	return v.trainers.Mutate(ctx, func(ctx context.Context) error {
		return v.api.DeleteTrainer(ctx, id)
	}, v.api.ListTrainers)
}

func (v *TrainersView) Trainers() []domain.Trainer { return v.trainers.Items() }

func (v *TrainersView) Render() {
	items := v.trainers.Items()
	if len(items) == 0 {
		fmt.Fprintln(v.out, "No trainers found")
		return
	}
	tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tAGE\tCONTACT")
	for _, t := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", t.Name, t.Email, t.Age, t.ContactInfo)
	}
	tw.Flush()
}
