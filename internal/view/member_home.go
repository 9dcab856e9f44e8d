package view

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/gate"
	"gymdesk/console/internal/session"
	"gymdesk/console/internal/state"

	"go.uber.org/zap"
)

// MemberHome is the member's self-service view: own profile, assigned
// trainer, and enrolled schedules. Read-only.
type MemberHome struct {
	gate     *gate.Gate
	sessions *session.Store
	api      *client.Client
	out      io.Writer
	logger   *zap.Logger

	profile   domain.Member
	trainer   *domain.Trainer
	schedules *state.Collection[domain.Schedule]
}

func NewMemberHome(sessions *session.Store, api *client.Client, out io.Writer, logger *zap.Logger) *MemberHome {
	schedules := state.NewCollection(func(s domain.Schedule) string { return s.ID })
	sessions.OnClear(schedules.Purge)
	return &MemberHome{
		gate:      gate.New(domain.RoleMember, logger),
		sessions:  sessions,
		api:       api,
		out:       out,
		logger:    logger,
		schedules: schedules,
	}
}

func (v *MemberHome) Mount(ctx context.Context) error {
	if err := mount(v.gate, v.sessions, v.out); err != nil {
		return err
	}

	profile, err := v.api.Me(ctx)
	if err != nil {
		fmt.Fprintln(v.out, "Failed to fetch profile")
		return err
	}
	v.profile = profile

	trainer, err := v.api.AssignedTrainer(ctx)
	switch {
	case err == nil:
		v.trainer = &trainer
	case errors.Is(err, client.ErrNotFound):
		// No trainer assigned yet.
		v.trainer = nil
	default:
		fmt.Fprintln(v.out, "Failed to fetch assigned trainer")
		return err
	}

	if err := v.schedules.Refresh(ctx, v.api.MemberSchedules); err != nil {
		fmt.Fprintln(v.out, "Failed to fetch schedules")
		return err
	}

	v.Render()
	return nil
}

func (v *MemberHome) Profile() domain.Member       { return v.profile }
func (v *MemberHome) Trainer() *domain.Trainer     { return v.trainer }
func (v *MemberHome) Schedules() []domain.Schedule { return v.schedules.Items() }

func (v *MemberHome) Render() {
	fmt.Fprintln(v.out, "Profile:")
	fmt.Fprintf(v.out, "  Name: %s\n", v.profile.Name)
	fmt.Fprintf(v.out, "  Email: %s\n", v.profile.Email)
	fmt.Fprintf(v.out, "  Age: %d\n", v.profile.Age)
	fmt.Fprintf(v.out, "  Membership: %s\n", v.profile.MembershipType)
	fmt.Fprintf(v.out, "  Contact: %s\n", v.profile.ContactInfo)

	fmt.Fprintln(v.out, "Assigned Trainer:")
	if v.trainer == nil {
		fmt.Fprintln(v.out, "  No trainer assigned")
	} else {
		fmt.Fprintf(v.out, "  Name: %s\n", v.trainer.Name)
		fmt.Fprintf(v.out, "  Email: %s\n", v.trainer.Email)
		contact := v.trainer.ContactInfo
		if contact == "" {
			contact = "N/A"
		}
		fmt.Fprintf(v.out, "  Contact: %s\n", contact)
	}

	fmt.Fprintln(v.out, "Schedules:")
	schedules := v.schedules.Items()
	if len(schedules) == 0 {
		fmt.Fprintln(v.out, "  No schedules found")
		return
	}
	for _, s := range schedules {
		fmt.Fprintf(v.out, "  %s  %s %s  Trainer: %s\n", s.Title, s.Date, s.Time, s.TrainerName())
	}
}
