package service

import "time"

// dateOnly truncates t to midnight UTC. Donation, request and needed-by
// dates are compared at day granularity.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
