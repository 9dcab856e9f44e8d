package view

import (
	"context"
	"fmt"
	"io"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/gate"
	"gymdesk/console/internal/session"

	"go.uber.org/zap"
)

// ManagerDashboard shows the aggregate counts from /reports/dashboard,
// rendered exactly as returned.
type ManagerDashboard struct {
	gate     *gate.Gate
	sessions *session.Store
	api      *client.Client
	out      io.Writer
	logger   *zap.Logger

	stats domain.DashboardStats
}

func NewManagerDashboard(sessions *session.Store, api *client.Client, out io.Writer, logger *zap.Logger) *ManagerDashboard {
	return &ManagerDashboard{
		gate:     gate.New(domain.RoleManager, logger),
		sessions: sessions,
		api:      api,
		out:      out,
		logger:   logger,
	}
}

// Mount gates, fetches and renders the dashboard.
func (v *ManagerDashboard) Mount(ctx context.Context) error {
	if err := mount(v.gate, v.sessions, v.out); err != nil {
		return err
	}
	stats, err := v.api.Dashboard(ctx)
	if err != nil {
		fmt.Fprintln(v.out, "Failed to fetch dashboard stats")
		return err
	}
	v.stats = stats
	v.render()
	return nil
}

func (v *ManagerDashboard) render() {
	sess := v.sessions.Current()
	if sess != nil {
		fmt.Fprintf(v.out, "Welcome, %s\n", sess.Role)
	}
	fmt.Fprintf(v.out, "Total Members: %d\n", v.stats.TotalMembers)
	fmt.Fprintf(v.out, "Total Trainers: %d\n", v.stats.TotalTrainers)
	fmt.Fprintf(v.out, "Today's Sessions: %d\n", v.stats.TodaySchedules)
}

// Stats returns the last fetched counts.
func (v *ManagerDashboard) Stats() domain.DashboardStats { return v.stats }
