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

// TrainerHome is the trainer's view: their assigned members and the
// schedules they lead. Read-only.
type TrainerHome struct {
	gate     *gate.Gate
	sessions *session.Store
	api      *client.Client
	out      io.Writer
	logger   *zap.Logger

	members   *state.Collection[domain.Member]
	schedules *state.Collection[domain.Schedule]
}

func NewTrainerHome(sessions *session.Store, api *client.Client, out io.Writer, logger *zap.Logger) *TrainerHome {
	members := state.NewCollection(func(m domain.Member) string { return m.ID })
	schedules := state.NewCollection(func(s domain.Schedule) string { return s.ID })
	sessions.OnClear(members.Purge)
	sessions.OnClear(schedules.Purge)
	return &TrainerHome{
		gate:      gate.New(domain.RoleTrainer, logger),
		sessions:  sessions,
		api:       api,
		out:       out,
		logger:    logger,
		members:   members,
		schedules: schedules,
	}
}

func (v *TrainerHome) Mount(ctx context.Context) error {
	if err := mount(v.gate, v.sessions, v.out); err != nil {
		return err
	}
	if err := v.members.Refresh(ctx, v.api.AssignedMembers); err != nil {
		fmt.Fprintln(v.out, "Failed to fetch assigned members")
		return err
	}
	if err := v.schedules.Refresh(ctx, v.api.TrainerSchedules); err != nil {
		fmt.Fprintln(v.out, "Failed to fetch schedules")
		return err
	}
	v.Render()
	return nil
}

func (v *TrainerHome) AssignedMembers() []domain.Member { return v.members.Items() }
func (v *TrainerHome) Schedules() []domain.Schedule     { return v.schedules.Items() }

func (v *TrainerHome) Render() {
	fmt.Fprintln(v.out, "Assigned Members:")
	members := v.members.Items()
	if len(members) == 0 {
		fmt.Fprintln(v.out, "  No members assigned")
	} else {
		tw := tabwriter.NewWriter(v.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  NAME\tEMAIL\tMEMBERSHIP")
		for _, m := range members {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", m.Name, m.Email, m.MembershipType)
		}
		tw.Flush()
	}

	fmt.Fprintln(v.out, "Schedules:")
	schedules := v.schedules.Items()
	if len(schedules) == 0 {
		fmt.Fprintln(v.out, "  No schedules found")
		return
	}
	for _, s := range schedules {
		fmt.Fprintf(v.out, "  %s  %s %s  (%d members)\n", s.Title, s.Date, s.Time, len(s.Members))
	}
}
