package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"gymdesk/console/internal/domain"
)

// ScheduleFilter holds the documented filters of the schedule listing.
// The only supported filter is an exact calendar date.
type ScheduleFilter struct {
	Date string
}

// ScheduleFilterFrom validates raw filter input (e.g. from a view's query
// controls). Unsupported keys are a caller error, never silently dropped.
func ScheduleFilterFrom(values map[string]string) (ScheduleFilter, error) {
	var f ScheduleFilter
	for k, v := range values {
		switch k {
		case "date":
			f.Date = v
		default:
			return ScheduleFilter{}, fmt.Errorf("%w: unsupported schedule filter %q", ErrValidation, k)
		}
	}
	return f, nil
}

func (f ScheduleFilter) query() url.Values {
	if f.Date == "" {
		return nil
	}
	q := url.Values{}
	q.Set("date", f.Date)
	return q
}

// ListSchedules returns schedules with trainer and roster joined in,
// optionally restricted to one date.
func (c *Client) ListSchedules(ctx context.Context, filter ScheduleFilter) ([]domain.Schedule, error) {
	var out []domain.Schedule
	if err := c.do(ctx, http.MethodGet, "/schedules", filter.query(), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSchedule creates a schedule; the trainer reference is mandatory
// and fixed for the schedule's lifetime.
func (c *Client) CreateSchedule(ctx context.Context, payload domain.ScheduleCreate) (domain.Schedule, error) {
	if payload.TrainerID == "" {
		return domain.Schedule{}, fmt.Errorf("%w: trainerId is required", ErrValidation)
	}
	var out domain.Schedule
	err := c.do(ctx, http.MethodPost, "/schedules/create", nil, payload, &out, true)
	return out, err
}

// DeleteSchedule removes a schedule. Enrolled members are unaffected.
func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/schedules/"+id, nil, nil, nil, true)
}

// AddMemberToSchedule enrolls a member. The backend deduplicates the
// roster, so replaying an enrollment is an accepted no-op, not an error.
func (c *Client) AddMemberToSchedule(ctx context.Context, scheduleID, memberID string) error {
	if memberID == "" {
		return fmt.Errorf("%w: memberId is required", ErrValidation)
	}
	body := map[string]string{"memberId": memberID}
	return c.do(ctx, http.MethodPut, "/schedules/"+scheduleID+"/add-member", nil, body, nil, true)
}
