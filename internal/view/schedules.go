package view

import (
	"context"
	"fmt"
	"io"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/coordinator"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/gate"
	"gymdesk/console/internal/session"
	"gymdesk/console/internal/state"

	"go.uber.org/zap"
)

// SchedulesView is the manager's schedule administration view: date
// filtering, creation with a mandatory trainer, deletion, and the
// enroll-member workflow. Changing the filter re-lists; overlapping
// responses are resolved by the collection's stale suppression.
type SchedulesView struct {
	gate     *gate.Gate
	sessions *session.Store
	api      *client.Client
	out      io.Writer
	logger   *zap.Logger

	schedules *state.Collection[domain.Schedule]
	filter    client.ScheduleFilter
	enroll    *coordinator.EnrollMemberFlow
}

func NewSchedulesView(sessions *session.Store, api *client.Client, out io.Writer, logger *zap.Logger) *SchedulesView {
	schedules := state.NewCollection(func(s domain.Schedule) string { return s.ID })
	sessions.OnClear(schedules.Purge)
	v := &SchedulesView{
		gate:      gate.New(domain.RoleManager, logger),
		sessions:  sessions,
		api:       api,
		out:       out,
		logger:    logger,
		schedules: schedules,
	}
	// The enroll flow refetches with whatever filter is current at submit
	// time, not the one captured when the modal opened.
	v.enroll = coordinator.NewEnrollMemberFlow(api, schedules, v.list, logger)
	return v
}

func (v *SchedulesView) list(ctx context.Context) ([]domain.Schedule, error) {
	return v.api.ListSchedules(ctx, v.filter)
}

func (v *SchedulesView) Mount(ctx context.Context) error {
	if err := mount(v.gate, v.sessions, v.out); err != nil {
		return err
	}
	if err := v.Refresh(ctx); err != nil {
		fmt.Fprintln(v.out, "Failed to fetch schedules")
		return err
	}
	v.Render()
	return nil
}

// Refresh re-lists with the current filter.
func (v *SchedulesView) Refresh(ctx context.Context) error {
	return v.schedules.Refresh(ctx, v.list)
}

// SetDateFilter validates and applies a date filter, then re-lists.
// An empty date clears the filter. Raw input goes through the documented
// filter validation; unsupported keys never reach the wire.
func (v *SchedulesView) SetDateFilter(ctx context.Context, date string) error {
	raw := map[string]string{}
	if date != "" {
		raw["date"] = date
	}
	f, err := client.ScheduleFilterFrom(raw)
	if err != nil {
		return err
	}
	v.filter = f
	return v.Refresh(ctx)
}

// Create creates a schedule and refetches the listing.
func (v *SchedulesView) Create(ctx context.Context, payload domain.ScheduleCreate) error {
	return v.schedules.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.CreateSchedule(ctx, payload)
		return err
	}, v.list)
}

// Remove deletes a schedule and refetches the listing. Enrolled members
// are untouched; only the schedule disappears.
func (v *SchedulesView) Remove(ctx context.Context, id string) error {
	return v.schedules.Mutate(ctx, func(ctx context.Context) error {
		return v.api.DeleteSchedule(ctx, id)
	}, v.list)
}

// EnrollFlow exposes the add-member modal state machine.
func (v *SchedulesView) EnrollFlow() *coordinator.EnrollMemberFlow { return v.enroll }

// Schedules returns the cached listing.
func (v *SchedulesView) Schedules() []domain.Schedule { return v.schedules.Items() }

// Render writes the schedule cards with their joined trainer and roster.
func (v *SchedulesView) Render() {
	items := v.schedules.Items()
	if len(items) == 0 {
		fmt.Fprintln(v.out, "No schedules found")
		return
	}
	for _, s := range items {
		fmt.Fprintf(v.out, "%s\n", s.Title)
		fmt.Fprintf(v.out, "  Date: %s  Time: %s  Trainer: %s\n", s.Date, s.Time, s.TrainerName())
		fmt.Fprintln(v.out, "  Members:")
		if len(s.Members) == 0 {
			fmt.Fprintln(v.out, "    No members yet")
			continue
		}
		for _, m := range s.Members {
			fmt.Fprintf(v.out, "    %s\n", m.Name)
		}
	}
}
