package view_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/session"
	"gymdesk/console/internal/stubapi"
	"gymdesk/console/internal/testutil"
	"gymdesk/console/internal/view"
)

type env struct {
	store    *stubapi.Store
	api      *client.Client
	sessions *session.Store
	out      *bytes.Buffer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store, url := testutil.StartBackend(t)
	api, sessions := testutil.NewClient(t, url)
	return &env{store: store, api: api, sessions: sessions, out: &bytes.Buffer{}}
}

func (e *env) loginManager(t *testing.T) {
	t.Helper()
	testutil.LoginManager(t, e.store, e.api)
}

func (e *env) addTrainer(t *testing.T, name, email string) domain.Trainer {
	t.Helper()
	tr, err := e.api.CreateTrainer(context.Background(), domain.TrainerCreate{
		Name: name, Age: 30, Email: email, Password: "pw1234", ContactInfo: "555",
	})
	if err != nil {
		t.Fatalf("CreateTrainer %s: %v", name, err)
	}
	return tr
}

func (e *env) addMember(t *testing.T, name, email string) domain.Member {
	t.Helper()
	m, err := e.api.CreateMember(context.Background(), domain.MemberCreate{
		Name: name, Age: 25, Email: email, Password: "pw1234",
		MembershipType: "basic", ContactInfo: "555",
	})
	if err != nil {
		t.Fatalf("CreateMember %s: %v", name, err)
	}
	return m
}

// Scenario: manager dashboard renders the backend's aggregate counts
// exactly as returned.
func TestManagerDashboard_RendersBackendCounts(t *testing.T) {
	e := newEnv(t)
	e.store.Now = func() time.Time {
		return time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	}
	e.loginManager(t)
	ctx := context.Background()

	sam := e.addTrainer(t, "Sam", "sam@gym.test")
	e.addTrainer(t, "Dana", "dana@gym.test")
	e.addMember(t, "Alex", "alex@gym.test")
	for i, date := range []string{"2026-08-31", "2026-08-31", "2026-09-01"} {
		if _, err := e.api.CreateSchedule(ctx, domain.ScheduleCreate{
			Title: fmt.Sprintf("S%d", i), Date: date, Time: "07:00 - 08:00", TrainerID: sam.ID,
		}); err != nil {
			t.Fatalf("CreateSchedule: %v", err)
		}
	}

	dash := view.NewManagerDashboard(e.sessions, e.api, e.out, nil)
	if err := dash.Mount(ctx); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	stats := dash.Stats()
	want := domain.DashboardStats{TotalMembers: 1, TotalTrainers: 2, TodaySchedules: 2}
	if stats != want {
		t.Errorf("stats: got %+v, want %+v", stats, want)
	}
	rendered := e.out.String()
	for _, line := range []string{"Total Members: 1", "Total Trainers: 2", "Today's Sessions: 2"} {
		if !strings.Contains(rendered, line) {
			t.Errorf("output missing %q:\n%s", line, rendered)
		}
	}
}

// Scenario: create a member, see "Not assigned", assign a trainer, see
// the trainer's name after the refetch.
func TestMembersView_CreateThenAssign(t *testing.T) {
	e := newEnv(t)
	e.loginManager(t)
	ctx := context.Background()
	e.addTrainer(t, "Sam", "sam@gym.test")

	v := view.NewMembersView(e.sessions, e.api, e.out, nil)
	if err := v.Mount(ctx); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !strings.Contains(e.out.String(), "No members found") {
		t.Errorf("empty state not rendered:\n%s", e.out.String())
	}

	if err := v.Add(ctx, domain.MemberCreate{
		Name: "Alex", Age: 27, Email: "alex@gym.test", Password: "pw1234",
		MembershipType: "premium", ContactInfo: "555",
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	members := v.Members()
	if len(members) != 1 || members[0].Name != "Alex" {
		t.Fatalf("members after create: %+v", members)
	}
	if got := members[0].TrainerName(); got != "Not assigned" {
		t.Errorf("trainer column before assignment: got %q, want \"Not assigned\"", got)
	}

	flow := v.AssignFlow()
	if err := flow.Open(ctx, members[0]); err != nil {
		t.Fatalf("flow.Open: %v", err)
	}
	if err := flow.Select(flow.Candidates()[0].ID); err != nil {
		t.Fatalf("flow.Select: %v", err)
	}
	if err := flow.Submit(ctx); err != nil {
		t.Fatalf("flow.Submit: %v", err)
	}

	members = v.Members()
	if got := members[0].TrainerName(); got != "Sam" {
		t.Errorf("trainer column after assignment: got %q, want \"Sam\"", got)
	}

	e.out.Reset()
	v.Render()
	if !strings.Contains(e.out.String(), "Sam") {
		t.Errorf("rendered table missing trainer name:\n%s", e.out.String())
	}
}

// Scenario: deleting a schedule with enrolled members removes only the
// schedule; the members survive.
func TestSchedulesView_DeleteWithEnrollments(t *testing.T) {
	e := newEnv(t)
	e.loginManager(t)
	ctx := context.Background()

	sam := e.addTrainer(t, "Sam", "sam@gym.test")
	alex := e.addMember(t, "Alex", "alex@gym.test")
	priya := e.addMember(t, "Priya", "priya@gym.test")

	sched, err := e.api.CreateSchedule(ctx, domain.ScheduleCreate{
		Title: "Morning", Date: "2026-08-31", Time: "07:00 - 08:00", TrainerID: sam.ID,
	})
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}
	for _, m := range []domain.Member{alex, priya} {
		if err := e.api.AddMemberToSchedule(ctx, sched.ID, m.ID); err != nil {
			t.Fatalf("AddMemberToSchedule: %v", err)
		}
	}

	v := view.NewSchedulesView(e.sessions, e.api, e.out, nil)
	if err := v.Mount(ctx); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if len(v.Schedules()) != 1 {
		t.Fatalf("schedules before delete: %+v", v.Schedules())
	}

	if err := v.Remove(ctx, sched.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	for _, s := range v.Schedules() {
		if s.ID == sched.ID {
			t.Error("deleted schedule still listed")
		}
	}

	// Enrolled members are unaffected.
	members, err := e.api.ListMembers(ctx)
	if err != nil {
		t.Fatalf("ListMembers after delete: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("members after schedule delete: %d, want 2", len(members))
	}
}

// Scenario: a trainer session is denied from manager views; nothing of
// the protected content is fetched or rendered.
func TestManagerView_DeniesTrainerSession(t *testing.T) {
	e := newEnv(t)
	e.loginManager(t)
	e.addTrainer(t, "Sam", "sam@gym.test")
	e.api.Logout()

	if _, err := e.api.Login(context.Background(), domain.RoleTrainer, "sam@gym.test", "pw1234"); err != nil {
		t.Fatalf("trainer login: %v", err)
	}

	dash := view.NewManagerDashboard(e.sessions, e.api, e.out, nil)
	err := dash.Mount(context.Background())
	if !errors.Is(err, view.ErrDenied) {
		t.Fatalf("Mount with trainer session: got %v, want ErrDenied", err)
	}
	if !strings.Contains(err.Error(), "/login") {
		t.Errorf("denial does not point at the login entry: %v", err)
	}
	if strings.Contains(e.out.String(), "Total Members") {
		t.Errorf("protected content leaked before allow:\n%s", e.out.String())
	}

	// The trainer's own view mounts fine with the same session.
	home := view.NewTrainerHome(e.sessions, e.api, &bytes.Buffer{}, nil)
	if err := home.Mount(context.Background()); err != nil {
		t.Errorf("TrainerHome.Mount: %v", err)
	}
}

// Logout purges every collection wired to the session store.
func TestLogout_PurgesCollections(t *testing.T) {
	e := newEnv(t)
	e.loginManager(t)
	ctx := context.Background()
	e.addMember(t, "Alex", "alex@gym.test")

	v := view.NewMembersView(e.sessions, e.api, e.out, nil)
	if err := v.Mount(ctx); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if len(v.Members()) != 1 {
		t.Fatalf("members before logout: %+v", v.Members())
	}

	e.api.Logout()
	if len(v.Members()) != 0 {
		t.Errorf("cached members survived logout: %+v", v.Members())
	}
}

// Overlapping filter changes: the later request wins even when the
// earlier response arrives last.
func TestSchedulesView_FilterSwitch(t *testing.T) {
	e := newEnv(t)
	e.loginManager(t)
	ctx := context.Background()
	sam := e.addTrainer(t, "Sam", "sam@gym.test")
	for _, d := range []string{"2026-08-31", "2026-09-01"} {
		if _, err := e.api.CreateSchedule(ctx, domain.ScheduleCreate{
			Title: d, Date: d, Time: "07:00 - 08:00", TrainerID: sam.ID,
		}); err != nil {
			t.Fatalf("CreateSchedule: %v", err)
		}
	}

	v := view.NewSchedulesView(e.sessions, e.api, e.out, nil)
	if err := v.Mount(ctx); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if err := v.SetDateFilter(ctx, "2026-09-01"); err != nil {
		t.Fatalf("SetDateFilter: %v", err)
	}
	schedules := v.Schedules()
	if len(schedules) != 1 || schedules[0].Date != "2026-09-01" {
		t.Errorf("filtered schedules: %+v", schedules)
	}

	if err := v.SetDateFilter(ctx, ""); err != nil {
		t.Fatalf("clear filter: %v", err)
	}
	if len(v.Schedules()) != 2 {
		t.Errorf("unfiltered schedules: %+v", v.Schedules())
	}
}
