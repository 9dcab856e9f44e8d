// Package state holds the in-memory entity caches backing the views.
// Consistency model: pull-based. Every successful mutation re-lists the
// owning collection; cached entities are never patched locally.
package state

import (
	"context"
	"sync"
)

// ListFunc fetches the authoritative listing for a collection.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// Collection maps entity id to entity and keeps the ordered id listing of
// the most recent list response. The order the backend returns is the
// order the view renders.
type Collection[T any] struct {
	mu   sync.Mutex
	idOf func(T) string
	byID map[string]T
	// ids holds the listing order of the last applied response.
	ids []string
	// issued numbers list requests. A response is applied only when its
	// ticket is the most recently issued one, which suppresses stale
	// responses from overlapping requests (e.g. rapid filter changes).
	issued uint64
}

func NewCollection[T any](idOf func(T) string) *Collection[T] {
	return &Collection[T]{
		idOf: idOf,
		byID: make(map[string]T),
	}
}

// beginList registers a new list request and returns its ticket.
func (c *Collection[T]) beginList() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// applyList installs a list response. Returns false (dropping the data)
// when a newer list request was issued after this one.
func (c *Collection[T]) applyList(ticket uint64, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.issued {
		return false
	}
	c.byID = make(map[string]T, len(items))
	c.ids = c.ids[:0]
	for _, it := range items {
		id := c.idOf(it)
		c.byID[id] = it
		c.ids = append(c.ids, id)
	}
	return true
}

// Refresh issues a list request and applies the response unless it was
// superseded by a later Refresh. The fetch error passes through untouched;
// on error nothing changes.
func (c *Collection[T]) Refresh(ctx context.Context, list ListFunc[T]) error {
	ticket := c.beginList()
	items, err := list(ctx)
	if err != nil {
		return err
	}
	c.applyList(ticket, items)
	return nil
}

// Mutate runs a mutation and, only on success, re-lists the collection.
// A failed mutation leaves the cache exactly as it was: consistency comes
// from the refetch, never from patching in the mutation's assumed effect.
func (c *Collection[T]) Mutate(ctx context.Context, mutate func(ctx context.Context) error, list ListFunc[T]) error {
	if err := mutate(ctx); err != nil {
		return err
	}
	return c.Refresh(ctx, list)
}

// Get returns the cached entity for an id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.byID[id]
	return v, ok
}

// Items returns the cached entities in listing order.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of cached entities.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids)
}

// Purge empties the collection. Invoked on logout via the session store's
// clear hooks; also invalidates any in-flight list response.
func (c *Collection[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[string]T)
	c.ids = nil
	c.issued++
}
