package domain

// DashboardStats is the aggregate count payload of /reports/dashboard.
// Rendered exactly as returned, never recomputed client-side.
type DashboardStats struct {
	TotalMembers   int `json:"totalMembers"`
	TotalTrainers  int `json:"totalTrainers"`
	TodaySchedules int `json:"todaySchedules"`
}
