package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

// AppointmentService manages donation appointments. There is no transition
// guard on appointment statuses: the update operation sets whichever valid
// value it is given.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	users        ports.UserRepository
	log          zerolog.Logger
}

func NewAppointmentService(appointments ports.AppointmentRepository, users ports.UserRepository, log zerolog.Logger) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		users:        users,
		log:          log,
	}
}

// Create books an appointment for the acting user, always in Pending status
// regardless of what the caller supplied.
func (s *AppointmentService) Create(ctx context.Context, in ports.CreateAppointmentInput, actingUsername string) (*domain.Appointment, error) {
	user, err := s.users.FindByUsername(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	bt, ok := domain.ParseBloodType(in.BloodType)
	if !ok {
		return nil, fmt.Errorf("%w: invalid blood type %q", domain.ErrInvalidInput, in.BloodType)
	}

	created, err := s.appointments.Insert(ctx, &domain.Appointment{
		BloodType:       bt,
		AppointmentDate: in.AppointmentDate,
		Location:        in.Location,
		Status:          domain.AppointmentPending,
		UserID:          user.ID,
		Username:        user.Username,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", created.ID).Str("username", user.Username).Msg("appointment booked")
	return created, nil
}

func (s *AppointmentService) ByUser(ctx context.Context, username string) ([]*domain.Appointment, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.appointments.FindByUserID(ctx, user.ID)
}

func (s *AppointmentService) All(ctx context.Context) ([]*domain.Appointment, error) {
	return s.appointments.FindAll(ctx)
}

// UpdateStatus sets the appointment status to the given value verbatim.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	st, ok := domain.ParseAppointmentStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: invalid appointment status %q", domain.ErrInvalidInput, status)
	}

	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Status = st
	return s.appointments.Update(ctx, a)
}
