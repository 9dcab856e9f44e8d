package client

import (
	"context"
	"fmt"
	"net/http"

	"gymdesk/console/internal/domain"
	"gymdesk/console/internal/session"
)

// loginResponse is the shape every role's login endpoint returns.
type loginResponse struct {
	Token string          `json:"token"`
	Role  string          `json:"role"`
	User  domain.Identity `json:"user"`
}

func loginPath(role domain.Role) string {
	switch role {
	case domain.RoleManager:
		return "/managers/login"
	case domain.RoleTrainer:
		return "/trainers/login"
	case domain.RoleMember:
		return "/members/login"
	}
	// Role is a closed set; Login validates before reaching here.
	return ""
}

// Login authenticates against the role's login endpoint and installs the
// resulting session. If a logout happened while the request was in flight
// the new session is discarded (logout always wins) and ErrAuth is
// returned so the caller lands back on the login view.
func (c *Client) Login(ctx context.Context, role domain.Role, email, password string) (*domain.Session, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	epoch := c.sessions.Epoch()

	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, loginPath(role), nil, body, &resp, false); err != nil {
		return nil, err
	}

	sess, err := session.FromLogin(role, resp.Token, resp.User)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	if !c.sessions.Start(sess, epoch) {
		return nil, fmt.Errorf("%w: session closed during login", ErrAuth)
	}
	return &sess, nil
}

// Logout unconditionally destroys the session; cached collections purge
// themselves through the store's clear hooks.
func (c *Client) Logout() {
	c.sessions.Clear()
}
