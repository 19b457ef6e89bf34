package ports

import (
	"context"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Insert(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Appointment, error)
	FindAll(ctx context.Context) ([]*domain.Appointment, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int64, error)
}
