package state_test

import (
	"context"
	"errors"
	"testing"

	"gymdesk/console/internal/state"
)

type row struct {
	ID   string
	Name string
}

func newRows() *state.Collection[row] {
	return state.NewCollection(func(r row) string { return r.ID })
}

func fixed(items ...row) state.ListFunc[row] {
	return func(ctx context.Context) ([]row, error) { return items, nil }
}

func TestRefresh_PopulatesInListingOrder(t *testing.T) {
	c := newRows()
	err := c.Refresh(context.Background(), fixed(row{"b", "Beta"}, row{"a", "Alpha"}))
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	items := c.Items()
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "a" {
		t.Errorf("Items: got %v, want backend order [b a]", items)
	}
	if got, ok := c.Get("a"); !ok || got.Name != "Alpha" {
		t.Errorf("Get(a): got %v ok=%v", got, ok)
	}
}

func TestRefresh_StaleResponseSuppressed(t *testing.T) {
	c := newRows()

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)

	// First refresh (the D1 filter) blocks inside its list call.
	go func() {
		done <- c.Refresh(context.Background(), func(ctx context.Context) ([]row, error) {
			close(entered)
			<-release
			return []row{{"d1", "stale"}}, nil
		})
	}()
	<-entered

	// Second refresh (the D2 filter) is issued later and lands first.
	if err := c.Refresh(context.Background(), fixed(row{"d2", "fresh"})); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}

	// Now the D1 response arrives late; it must be dropped.
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Refresh: %v", err)
	}

	items := c.Items()
	if len(items) != 1 || items[0].ID != "d2" {
		t.Errorf("after late stale response: got %v, want [d2]", items)
	}
}

func TestRefresh_ErrorLeavesCacheUntouched(t *testing.T) {
	c := newRows()
	if err := c.Refresh(context.Background(), fixed(row{"a", "Alpha"})); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	boom := errors.New("boom")
	err := c.Refresh(context.Background(), func(ctx context.Context) ([]row, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Refresh error: got %v, want boom", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len after failed refresh: got %d, want 1", c.Len())
	}
}

func TestMutate_FailedMutationDoesNotRefetch(t *testing.T) {
	c := newRows()
	if err := c.Refresh(context.Background(), fixed(row{"a", "Alpha"})); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	boom := errors.New("boom")
	listCalls := 0
	err := c.Mutate(context.Background(),
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) ([]row, error) {
			listCalls++
			return nil, nil
		})
	if !errors.Is(err, boom) {
		t.Fatalf("Mutate: got %v, want boom", err)
	}
	if listCalls != 0 {
		t.Errorf("list called %d times after failed mutation, want 0", listCalls)
	}
	if c.Len() != 1 {
		t.Errorf("cache changed after failed mutation")
	}
}

func TestMutate_SuccessTriggersRelist(t *testing.T) {
	c := newRows()
	err := c.Mutate(context.Background(),
		func(ctx context.Context) error { return nil },
		fixed(row{"a", "Alpha"}, row{"b", "Beta"}))
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len after mutation: got %d, want 2", c.Len())
	}
}

func TestPurge_EmptiesAndInvalidatesInFlight(t *testing.T) {
	c := newRows()

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- c.Refresh(context.Background(), func(ctx context.Context) ([]row, error) {
			close(entered)
			<-release
			return []row{{"late", "late"}}, nil
		})
	}()
	<-entered

	c.Purge()
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("purged collection repopulated by in-flight response: %v", c.Items())
	}
}
