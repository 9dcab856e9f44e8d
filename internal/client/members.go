package client

import (
	"context"
	"fmt"
	"net/http"

	"gymdesk/console/internal/domain"
)

// ListMembers returns all members with their assigned trainer joined in.
func (c *Client) ListMembers(ctx context.Context) ([]domain.Member, error) {
	var out []domain.Member
	if err := c.do(ctx, http.MethodGet, "/members", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMember registers a new member. The payload is the only place the
// member's password crosses the wire.
func (c *Client) CreateMember(ctx context.Context, payload domain.MemberCreate) (domain.Member, error) {
	var out domain.Member
	err := c.do(ctx, http.MethodPost, "/members/create", nil, payload, &out, true)
	return out, err
}

// UpdateMember updates a member's profile fields. The update payload type
// has no password field, so the credential can never be echoed back.
func (c *Client) UpdateMember(ctx context.Context, id string, payload domain.MemberUpdate) (domain.Member, error) {
	var out domain.Member
	err := c.do(ctx, http.MethodPut, "/members/"+id, nil, payload, &out, true)
	return out, err
}

// DeleteMember removes a member.
func (c *Client) DeleteMember(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/members/"+id, nil, nil, nil, true)
}

// AssignTrainer sets a member's trainer, replacing any previous
// assignment (last-write-wins). Existing schedule rosters are unaffected.
func (c *Client) AssignTrainer(ctx context.Context, memberID, trainerID string) error {
	if trainerID == "" {
		return fmt.Errorf("%w: trainerId is required", ErrValidation)
	}
	body := map[string]string{"trainerId": trainerID}
	return c.do(ctx, http.MethodPut, "/members/"+memberID+"/assign-trainer", nil, body, nil, true)
}

// Me returns the logged-in member's own profile.
func (c *Client) Me(ctx context.Context) (domain.Member, error) {
	var out domain.Member
	err := c.do(ctx, http.MethodGet, "/members/me", nil, nil, &out, true)
	return out, err
}

// AssignedTrainer returns the logged-in member's trainer. ErrNotFound
// means no trainer is assigned.
func (c *Client) AssignedTrainer(ctx context.Context) (domain.Trainer, error) {
	var out domain.Trainer
	err := c.do(ctx, http.MethodGet, "/members/assigned-trainer", nil, nil, &out, true)
	return out, err
}

// MemberSchedules returns the schedules the logged-in member is enrolled in.
func (c *Client) MemberSchedules(ctx context.Context) ([]domain.Schedule, error) {
	var out []domain.Schedule
	if err := c.do(ctx, http.MethodGet, "/members/schedules", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}
