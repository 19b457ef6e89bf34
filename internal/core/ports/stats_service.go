package ports

import "context"

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	Users                int64            `json:"users"`
	Appointments         int64            `json:"appointments"`
	AppointmentsByStatus map[string]int64 `json:"appointments_by_status"`
	PendingRequests      int64            `json:"pending_requests"`
	FulfilledRequests    int64            `json:"fulfilled_requests"`
	CancelledRequests    int64            `json:"cancelled_requests"`
	UrgentRequests       int64            `json:"urgent_requests"`
	AvailableDonations   map[string]int64 `json:"available_donations_by_blood_type"`
}

// StatsService aggregates counts for the admin dashboard. Implementations
// may serve slightly stale numbers from a cache.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}
