package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

// StatsCache abstracts the dashboard counter cache (Redis). Get returns
// (nil, nil) on a miss.
type StatsCache interface {
	Get(ctx context.Context) (*ports.DashboardStats, error)
	Set(ctx context.Context, stats *ports.DashboardStats) error
}

var dashboardBloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var dashboardAppointmentStatuses = []domain.AppointmentStatus{
	domain.AppointmentPending,
	domain.AppointmentConfirmed,
	domain.AppointmentCompleted,
	domain.AppointmentCancelled,
}

// StatsService aggregates admin dashboard counts, serving them from the
// cache when fresh. Cache failures degrade to direct repository reads.
type StatsService struct {
	users        ports.UserRepository
	appointments ports.AppointmentRepository
	requests     ports.RequestRepository
	donations    ports.DonationRepository
	cache        StatsCache
	log          zerolog.Logger
}

func NewStatsService(
	users ports.UserRepository,
	appointments ports.AppointmentRepository,
	requests ports.RequestRepository,
	donations ports.DonationRepository,
	cache StatsCache,
	log zerolog.Logger,
) *StatsService {
	return &StatsService{
		users:        users,
		appointments: appointments,
		requests:     requests,
		donations:    donations,
		cache:        cache,
		log:          log,
	}
}

// Dashboard returns the admin summary counts.
func (s *StatsService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("stats cache read failed, recomputing")
		} else if cached != nil {
			return cached, nil
		}
	}

	stats := &ports.DashboardStats{
		AppointmentsByStatus: make(map[string]int64, len(dashboardAppointmentStatuses)),
		AvailableDonations:   make(map[string]int64, len(dashboardBloodTypes)),
	}

	var err error
	if stats.Users, err = s.users.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.Appointments, err = s.appointments.CountAll(ctx); err != nil {
		return nil, err
	}
	for _, st := range dashboardAppointmentStatuses {
		n, err := s.appointments.CountByStatus(ctx, st)
		if err != nil {
			return nil, err
		}
		stats.AppointmentsByStatus[string(st)] = n
	}
	if stats.PendingRequests, err = s.requests.CountByStatus(ctx, domain.RequestPending); err != nil {
		return nil, err
	}
	if stats.FulfilledRequests, err = s.requests.CountByStatus(ctx, domain.RequestFulfilled); err != nil {
		return nil, err
	}
	if stats.CancelledRequests, err = s.requests.CountByStatus(ctx, domain.RequestCancelled); err != nil {
		return nil, err
	}
	if stats.UrgentRequests, err = s.requests.CountByUrgencyAndStatus(ctx, domain.UrgencyHigh, domain.RequestPending); err != nil {
		return nil, err
	}
	for _, bt := range dashboardBloodTypes {
		n, err := s.donations.CountAvailableByBloodType(ctx, bt)
		if err != nil {
			return nil, err
		}
		stats.AvailableDonations[bt] = n
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.log.Warn().Err(err).Msg("stats cache write failed")
		}
	}

	return stats, nil
}
