// Package testutil spins up the in-memory backend and a wired client for
// package tests.
package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"gymdesk/console/internal/client"
	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/session"
	"gymdesk/console/internal/stubapi"

	"go.uber.org/zap"
)

// Secret signs the stub backend's tokens in tests.
const Secret = "test-secret"

// StartBackend serves the stub API over httptest and returns its store
// and base URL. The server is torn down with the test.
func StartBackend(t *testing.T) (*stubapi.Store, string) {
	t.Helper()
	store := stubapi.NewStore()
	router := stubapi.NewRouter(store, Secret, time.Hour, zap.NewNop())
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return store, srv.URL
}

// NewClient returns a resource client and its session store pointed at
// the given backend.
func NewClient(t *testing.T, baseURL string) (*client.Client, *session.Store) {
	t.Helper()
	sessions := session.NewStore(zap.NewNop())
	api := client.New(baseURL, 5*time.Second, sessions, zap.NewNop())
	return api, sessions
}

// SeedManager registers a manager account on the store.
func SeedManager(t *testing.T, store *stubapi.Store) (email, password string) {
	t.Helper()
	email, password = "boss@gym.test", "managerpw"
	if _, err := store.AddManager("Boss", email, password); err != nil {
		t.Fatalf("AddManager: %v", err)
	}
	return email, password
}

// LoginManager seeds a manager and logs the client in as them.
func LoginManager(t *testing.T, store *stubapi.Store, api *client.Client) {
	t.Helper()
	email, password := SeedManager(t, store)
	if _, err := api.Login(context.Background(), domain.RoleManager, email, password); err != nil {
		t.Fatalf("manager login: %v", err)
	}
}
