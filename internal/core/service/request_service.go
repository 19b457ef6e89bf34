package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

// RequestService is the blood-request half of the lifecycle engine.
// Requests move from Pending to Fulfilled or Cancelled; both end states
// are absorbing. The current state is re-read immediately before every
// transition, so a transition that raced and lost observes the post-race
// state and fails rather than silently overwriting it.
type RequestService struct {
	requests ports.RequestRepository
	users    ports.UserRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewRequestService(requests ports.RequestRepository, users ports.UserRepository, log zerolog.Logger) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		log:      log,
		now:      time.Now,
	}
}

// Create opens a request for the acting user. The request date defaults to
// today and the status to Pending. A needed-by date in the past is rejected
// even when everything else validates.
func (s *RequestService) Create(ctx context.Context, in ports.CreateRequestInput, actingUsername string) (*domain.BloodRequest, error) {
	requester, err := s.users.FindByUsername(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	bt, ok := domain.ParseBloodType(in.BloodType)
	if !ok {
		return nil, fmt.Errorf("%w: invalid blood type %q", domain.ErrInvalidInput, in.BloodType)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: request amount must be positive", domain.ErrInvalidInput)
	}
	urgency, ok := domain.ParseUrgency(in.Urgency)
	if !ok {
		return nil, fmt.Errorf("%w: invalid urgency %q", domain.ErrInvalidInput, in.Urgency)
	}

	status := domain.RequestPending
	if in.Status != "" {
		status, ok = domain.ParseRequestStatus(in.Status)
		if !ok {
			return nil, fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, in.Status)
		}
	}

	today := dateOnly(s.now())
	if in.NeededByDate != nil && in.NeededByDate.Before(today) {
		return nil, fmt.Errorf("%w: needed-by date cannot be in the past", domain.ErrInvalidInput)
	}

	date := in.RequestDate
	if date.IsZero() {
		date = today
	}

	created, err := s.requests.Insert(ctx, &domain.BloodRequest{
		BloodType:         bt,
		Amount:            in.Amount,
		Urgency:           urgency,
		RequesterName:     in.RequesterName,
		HospitalName:      in.HospitalName,
		Reason:            in.Reason,
		NeededByDate:      in.NeededByDate,
		RequestDate:       date,
		Status:            status,
		RequesterID:       requester.ID,
		RequesterUsername: requester.Username,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", created.ID).Str("requester", requester.Username).
		Str("blood_type", bt).Str("urgency", string(urgency)).Msg("blood request created")
	return created, nil
}

// Update applies the non-nil fields of patch with the same validation as
// Create. Amount is validated whenever it is present in the patch; a
// present-but-non-positive amount is rejected rather than skipped.
func (s *RequestService) Update(ctx context.Context, id string, patch domain.RequestPatch) (*domain.BloodRequest, error) {
	r, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.BloodType != nil {
		bt, ok := domain.ParseBloodType(*patch.BloodType)
		if !ok {
			return nil, fmt.Errorf("%w: invalid blood type %q", domain.ErrInvalidInput, *patch.BloodType)
		}
		r.BloodType = bt
	}
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, fmt.Errorf("%w: request amount must be positive", domain.ErrInvalidInput)
		}
		r.Amount = *patch.Amount
	}
	if patch.Urgency != nil {
		u, ok := domain.ParseUrgency(*patch.Urgency)
		if !ok {
			return nil, fmt.Errorf("%w: invalid urgency %q", domain.ErrInvalidInput, *patch.Urgency)
		}
		r.Urgency = u
	}
	if patch.RequesterName != nil {
		r.RequesterName = *patch.RequesterName
	}
	if patch.HospitalName != nil {
		r.HospitalName = *patch.HospitalName
	}
	if patch.Reason != nil {
		r.Reason = *patch.Reason
	}
	if patch.NeededByDate != nil {
		if patch.NeededByDate.Before(dateOnly(s.now())) {
			return nil, fmt.Errorf("%w: needed-by date cannot be in the past", domain.ErrInvalidInput)
		}
		r.NeededByDate = patch.NeededByDate
	}
	if patch.Status != nil {
		st, ok := domain.ParseRequestStatus(*patch.Status)
		if !ok {
			return nil, fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, *patch.Status)
		}
		r.Status = st
	}

	return s.requests.Update(ctx, r)
}

func (s *RequestService) Delete(ctx context.Context, id string) error {
	if err := s.requests.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("blood request deleted")
	return nil
}

// Fulfill moves the request to Fulfilled. Requests already Fulfilled or
// Cancelled cannot transition.
func (s *RequestService) Fulfill(ctx context.Context, id string) (*domain.BloodRequest, error) {
	r, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !r.Status.CanTransitionTo(domain.RequestFulfilled) {
		return nil, fmt.Errorf("%w: cannot fulfill a %s request", domain.ErrInvalidTransition, r.Status)
	}

	r.Status = domain.RequestFulfilled
	updated, err := s.requests.Update(ctx, r)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", id).Msg("blood request fulfilled")
	return updated, nil
}

// Cancel moves the request to Cancelled. Permitted for the owning requester
// and for administrators; everyone else is rejected before the transition
// guard is even consulted.
func (s *RequestService) Cancel(ctx context.Context, id, actingUsername string) (*domain.BloodRequest, error) {
	r, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.RequesterUsername != actingUsername {
		acting, err := s.users.FindByUsername(ctx, actingUsername)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownUser) {
				return nil, domain.ErrForbidden
			}
			return nil, err
		}
		if !acting.Role.CanAdminister() {
			return nil, domain.ErrForbidden
		}
	}

	if !r.Status.CanTransitionTo(domain.RequestCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel a %s request", domain.ErrInvalidTransition, r.Status)
	}

	r.Status = domain.RequestCancelled
	updated, err := s.requests.Update(ctx, r)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", id).Str("by", actingUsername).Msg("blood request cancelled")
	return updated, nil
}

func (s *RequestService) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return s.requests.FindByID(ctx, id)
}

func (s *RequestService) All(ctx context.Context) ([]*domain.BloodRequest, error) {
	return s.requests.FindAll(ctx)
}

func (s *RequestService) ByBloodType(ctx context.Context, bloodType string) ([]*domain.BloodRequest, error) {
	bt, ok := domain.ParseBloodType(bloodType)
	if !ok {
		return nil, fmt.Errorf("%w: invalid blood type %q", domain.ErrInvalidInput, bloodType)
	}
	return s.requests.FindByBloodType(ctx, bt)
}

func (s *RequestService) Pending(ctx context.Context) ([]*domain.BloodRequest, error) {
	return s.requests.FindByStatus(ctx, domain.RequestPending)
}

// Urgent lists pending requests with High urgency.
func (s *RequestService) Urgent(ctx context.Context) ([]*domain.BloodRequest, error) {
	return s.requests.FindByUrgencyAndStatus(ctx, domain.UrgencyHigh, domain.RequestPending)
}

func (s *RequestService) ByUser(ctx context.Context, username string) ([]*domain.BloodRequest, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.requests.FindByRequesterID(ctx, user.ID)
}

func (s *RequestService) ByHospital(ctx context.Context, hospitalName string) ([]*domain.BloodRequest, error) {
	return s.requests.FindByHospital(ctx, hospitalName)
}

// Overdue lists requests whose needed-by date has passed while still Pending.
func (s *RequestService) Overdue(ctx context.Context) ([]*domain.BloodRequest, error) {
	return s.requests.FindOverdue(ctx, dateOnly(s.now()))
}

func (s *RequestService) Recent(ctx context.Context) ([]*domain.BloodRequest, error) {
	return s.requests.FindRecent(ctx, recentLimit)
}

func (s *RequestService) CountByStatus(ctx context.Context, status string) (int64, error) {
	st, ok := domain.ParseRequestStatus(status)
	if !ok {
		return 0, fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, status)
	}
	return s.requests.CountByStatus(ctx, st)
}

func (s *RequestService) UrgentCount(ctx context.Context) (int64, error) {
	return s.requests.CountByUrgencyAndStatus(ctx, domain.UrgencyHigh, domain.RequestPending)
}
