package ports

import (
	"context"
	"time"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

// CreateAppointmentInput carries the data for booking a donation slot.
type CreateAppointmentInput struct {
	BloodType       string
	AppointmentDate time.Time
	Location        string
}

// AppointmentService manages donation appointments. Appointments are always
// created Pending; status updates set the given value without transition
// guards.
type AppointmentService interface {
	Create(ctx context.Context, in CreateAppointmentInput, actingUsername string) (*domain.Appointment, error)
	ByUser(ctx context.Context, username string) ([]*domain.Appointment, error)
	All(ctx context.Context) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Appointment, error)
}
