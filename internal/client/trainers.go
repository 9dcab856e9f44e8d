package client

import (
	"context"
	"net/http"

	"gymdesk/console/internal/domain"
)

// ListTrainers returns all trainers.
func (c *Client) ListTrainers(ctx context.Context) ([]domain.Trainer, error) {
	var out []domain.Trainer
	if err := c.do(ctx, http.MethodGet, "/trainers", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTrainer registers a new trainer. The password set here is
// immutable through this interface afterwards.
func (c *Client) CreateTrainer(ctx context.Context, payload domain.TrainerCreate) (domain.Trainer, error) {
	var out domain.Trainer
	err := c.do(ctx, http.MethodPost, "/trainers/create", nil, payload, &out, true)
	return out, err
}

// UpdateTrainer updates a trainer's profile fields; the payload type
// carries no password.
func (c *Client) UpdateTrainer(ctx context.Context, id string, payload domain.TrainerUpdate) (domain.Trainer, error) {
	var out domain.Trainer
	err := c.do(ctx, http.MethodPut, "/trainers/"+id, nil, payload, &out, true)
	return out, err
}

// DeleteTrainer removes a trainer.
func (c *Client) DeleteTrainer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/trainers/"+id, nil, nil, nil, true)
}

// AssignedMembers returns the members assigned to the logged-in trainer.
func (c *Client) AssignedMembers(ctx context.Context) ([]domain.Member, error) {
	var out []domain.Member
	if err := c.do(ctx, http.MethodGet, "/trainers/assigned-members", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// TrainerSchedules returns the schedules led by the logged-in trainer.
func (c *Client) TrainerSchedules(ctx context.Context) ([]domain.Schedule, error) {
	var out []domain.Schedule
	if err := c.do(ctx, http.MethodGet, "/trainers/schedules", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}
