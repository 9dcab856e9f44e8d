package coordinator_test

import (
	"context"
	"errors"
	"testing"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/coordinator"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/state"
	"gymdesk/console/internal/stubapi"
	"gymdesk/console/internal/testutil"
)

type env struct {
	store *stubapi.Store
	api   *client.Client
	sam   domain.Trainer
	alex  domain.Member
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store, url := testutil.StartBackend(t)
	api, _ := testutil.NewClient(t, url)
	testutil.LoginManager(t, store, api)
	ctx := context.Background()

	sam, err := api.CreateTrainer(ctx, domain.TrainerCreate{
		Name: "Sam", Age: 34, Email: "sam@gym.test", Password: "pw1234", ContactInfo: "555",
	})
	if err != nil {
		t.Fatalf("CreateTrainer: %v", err)
	}
	alex, err := api.CreateMember(ctx, domain.MemberCreate{
		Name: "Alex", Age: 27, Email: "alex@gym.test", Password: "pw1234",
		MembershipType: "basic", ContactInfo: "555",
	})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	return &env{store: store, api: api, sam: sam, alex: alex}
}

func memberCollection() *state.Collection[domain.Member] {
	return state.NewCollection(func(m domain.Member) string { return m.ID })
}

func scheduleCollection() *state.Collection[domain.Schedule] {
	return state.NewCollection(func(s domain.Schedule) string { return s.ID })
}

func TestAssignTrainerFlow_HappyPath(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	members := memberCollection()
	if err := members.Refresh(ctx, e.api.ListMembers); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	flow := coordinator.NewAssignTrainerFlow(e.api, members, nil)
	if flow.Phase() != coordinator.Closed {
		t.Fatalf("new flow phase: %v", flow.Phase())
	}

	if err := flow.Open(ctx, e.alex); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if flow.Phase() != coordinator.Selecting {
		t.Errorf("phase after Open: %v", flow.Phase())
	}
	if len(flow.Candidates()) != 1 || flow.Candidates()[0].ID != e.sam.ID {
		t.Fatalf("candidates: %+v", flow.Candidates())
	}

	if err := flow.Select(e.sam.ID); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := flow.Submit(ctx); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if flow.Phase() != coordinator.Closed {
		t.Errorf("phase after success: %v", flow.Phase())
	}

	// The refetched collection carries the join, not a local patch.
	got, ok := members.Get(e.alex.ID)
	if !ok || got.Trainer == nil || got.Trainer.Name != "Sam" {
		t.Errorf("member after assignment: %+v", got)
	}
}

func TestAssignTrainerFlow_RejectsNonCandidate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	flow := coordinator.NewAssignTrainerFlow(e.api, memberCollection(), nil)
	if err := flow.Open(ctx, e.alex); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := flow.Select("65f000000000000000000000"); !errors.Is(err, coordinator.ErrNotCandidate) {
		t.Errorf("Select unknown id: got %v, want ErrNotCandidate", err)
	}
	if err := flow.Submit(ctx); !errors.Is(err, coordinator.ErrNoSelection) {
		t.Errorf("Submit without selection: got %v, want ErrNoSelection", err)
	}
}

func TestAssignTrainerFlow_FailureRetainsSelection(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	members := memberCollection()
	flow := coordinator.NewAssignTrainerFlow(e.api, members, nil)
	if err := flow.Open(ctx, e.alex); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := flow.Select(e.sam.ID); err != nil {
		t.Fatalf("Select: %v", err)
	}

	// The trainer vanishes between selection and submit.
	if err := e.store.DeleteTrainer(e.sam.ID); err != nil {
		t.Fatalf("DeleteTrainer: %v", err)
	}

	err := flow.Submit(ctx)
	if !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("Submit after trainer deleted: got %v, want ErrNotFound", err)
	}
	if flow.Phase() != coordinator.Selecting {
		t.Errorf("phase after failure: %v, want Selecting", flow.Phase())
	}
	if flow.Selected() != e.sam.ID {
		t.Errorf("selection not retained: %q", flow.Selected())
	}
	if flow.Err() == nil {
		t.Error("error not surfaced via Err")
	}
	// Nothing was patched locally.
	if members.Len() != 0 {
		t.Errorf("failed submit populated the collection: %v", members.Items())
	}
}

func TestEnrollMemberFlow_IdempotentReplay(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	sched, err := e.api.CreateSchedule(ctx, domain.ScheduleCreate{
		Title: "Morning", Date: "2026-08-31", Time: "07:00 - 08:00", TrainerID: e.sam.ID,
	})
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}

	schedules := scheduleCollection()
	list := func(ctx context.Context) ([]domain.Schedule, error) {
		return e.api.ListSchedules(ctx, client.ScheduleFilter{})
	}

	enroll := func() {
		flow := coordinator.NewEnrollMemberFlow(e.api, schedules, list, nil)
		if err := flow.Open(ctx, sched); err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := flow.Select(e.alex.ID); err != nil {
			t.Fatalf("Select: %v", err)
		}
		if err := flow.Submit(ctx); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	// Enrolling the same member twice is an accepted no-op replay.
	enroll()
	enroll()

	got, ok := schedules.Get(sched.ID)
	if !ok {
		t.Fatal("schedule missing from collection")
	}
	if len(got.Members) != 1 || got.Members[0].ID != e.alex.ID {
		t.Errorf("roster after replay: %+v, want exactly one Alex", got.Members)
	}
}

func TestEnrollMemberFlow_ClosedFlowRejectsCalls(t *testing.T) {
	e := newEnv(t)
	schedules := scheduleCollection()
	flow := coordinator.NewEnrollMemberFlow(e.api, schedules, func(ctx context.Context) ([]domain.Schedule, error) {
		return nil, nil
	}, nil)

	if err := flow.Select("x"); !errors.Is(err, coordinator.ErrFlowClosed) {
		t.Errorf("Select on closed flow: got %v, want ErrFlowClosed", err)
	}
	if err := flow.Submit(context.Background()); !errors.Is(err, coordinator.ErrFlowClosed) {
		t.Errorf("Submit on closed flow: got %v, want ErrFlowClosed", err)
	}
}
