package client

import (
	"context"
	"net/http"

	"gymdesk/console/internal/domain"
)

// Dashboard returns the aggregate counts for the manager dashboard.
func (c *Client) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var out domain.DashboardStats
	err := c.do(ctx, http.MethodGet, "/reports/dashboard", nil, nil, &out, true)
	return out, err
}
