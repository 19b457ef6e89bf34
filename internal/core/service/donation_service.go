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

const recentLimit = 10

// DonationService is the donation half of the lifecycle engine.
type DonationService struct {
	donations ports.DonationRepository
	users     ports.UserRepository
	log       zerolog.Logger
	now       func() time.Time
}

func NewDonationService(donations ports.DonationRepository, users ports.UserRepository, log zerolog.Logger) *DonationService {
	return &DonationService{
		donations: donations,
		users:     users,
		log:       log,
		now:       time.Now,
	}
}

// Create registers a donation for the acting user. The donation date
// defaults to today and availability to true when unset.
func (s *DonationService) Create(ctx context.Context, in ports.CreateDonationInput, actingUsername string) (*domain.Donation, error) {
	donor, err := s.users.FindByUsername(ctx, actingUsername)
	if err != nil {
		return nil, err
	}

	bt, ok := domain.ParseBloodType(in.BloodType)
	if !ok {
		return nil, fmt.Errorf("%w: invalid blood type %q", domain.ErrInvalidInput, in.BloodType)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: donation amount must be positive", domain.ErrInvalidInput)
	}

	date := in.DonationDate
	if date.IsZero() {
		date = dateOnly(s.now())
	}
	available := true
	if in.Available != nil {
		available = *in.Available
	}

	created, err := s.donations.Insert(ctx, &domain.Donation{
		BloodType:     bt,
		Amount:        in.Amount,
		Available:     available,
		DonationDate:  date,
		Location:      in.Location,
		Notes:         in.Notes,
		DonorID:       donor.ID,
		DonorUsername: donor.Username,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", created.ID).Str("donor", donor.Username).Str("blood_type", bt).Msg("donation created")
	return created, nil
}

// Update applies the non-nil fields of patch, re-validating blood type and
// amount when present. A supplied donor id must resolve to an existing user.
func (s *DonationService) Update(ctx context.Context, id string, patch domain.DonationPatch) (*domain.Donation, error) {
	d, err := s.donations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.BloodType != nil {
		bt, ok := domain.ParseBloodType(*patch.BloodType)
		if !ok {
			return nil, fmt.Errorf("%w: invalid blood type %q", domain.ErrInvalidInput, *patch.BloodType)
		}
		d.BloodType = bt
	}
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, fmt.Errorf("%w: donation amount must be positive", domain.ErrInvalidInput)
		}
		d.Amount = *patch.Amount
	}
	if patch.DonationDate != nil {
		d.DonationDate = *patch.DonationDate
	}
	if patch.Location != nil {
		d.Location = *patch.Location
	}
	if patch.Notes != nil {
		d.Notes = *patch.Notes
	}
	if patch.Available != nil {
		d.Available = *patch.Available
	}
	if patch.DonorID != nil {
		donor, err := s.users.FindByID(ctx, *patch.DonorID)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownUser) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		d.DonorID = donor.ID
		d.DonorUsername = donor.Username
	}

	return s.donations.Update(ctx, d)
}

func (s *DonationService) Delete(ctx context.Context, id string) error {
	if err := s.donations.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("donation deleted")
	return nil
}

// MarkUsed flips availability to false. Idempotent: marking an already-used
// donation again is a no-op success.
func (s *DonationService) MarkUsed(ctx context.Context, id string) (*domain.Donation, error) {
	d, err := s.donations.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Available = false
	updated, err := s.donations.Update(ctx, d)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", id).Msg("donation marked used")
	return updated, nil
}

// CanDonate computes whole-blood eligibility. Unknown users fail closed to
// false. A donor with an age on file must be 18 to 65 inclusive, and the
// most recent donation (by max donation date, whatever order storage
// returns) must be at least 56 days old. No age and no prior donations
// means eligible.
func (s *DonationService) CanDonate(ctx context.Context, username string) (bool, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUser) {
			return false, nil
		}
		return false, err
	}

	if user.Age != nil && (*user.Age < domain.MinDonorAge || *user.Age > domain.MaxDonorAge) {
		return false, nil
	}

	prior, err := s.donations.FindByDonorID(ctx, user.ID)
	if err != nil {
		return false, err
	}

	var last time.Time
	for _, d := range prior {
		if d.DonationDate.After(last) {
			last = d.DonationDate
		}
	}
	if !last.IsZero() {
		eligibleFrom := last.AddDate(0, 0, domain.DonationCooldownDays)
		if dateOnly(s.now()).Before(eligibleFrom) {
			return false, nil
		}
	}

	return true, nil
}

// Donors lists every account with the DONOR role, the directory donation
// coordinators browse when chasing a blood type.
func (s *DonationService) Donors(ctx context.Context) ([]*domain.User, error) {
	donors, err := s.users.FindByRole(ctx, domain.RoleDonor)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	return donors, nil
}

func (s *DonationService) GetByID(ctx context.Context, id string) (*domain.Donation, error) {
	return s.donations.FindByID(ctx, id)
}

func (s *DonationService) All(ctx context.Context) ([]*domain.Donation, error) {
	return s.donations.FindAll(ctx)
}

func (s *DonationService) Available(ctx context.Context) ([]*domain.Donation, error) {
	return s.donations.FindAvailable(ctx)
}

// ByBloodType lists available donations of the given type.
func (s *DonationService) ByBloodType(ctx context.Context, bloodType string) ([]*domain.Donation, error) {
	bt, ok := domain.ParseBloodType(bloodType)
	if !ok {
		return nil, fmt.Errorf("%w: invalid blood type %q", domain.ErrInvalidInput, bloodType)
	}
	return s.donations.FindAvailableByBloodType(ctx, bt)
}

func (s *DonationService) ByUser(ctx context.Context, username string) ([]*domain.Donation, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.donations.FindByDonorID(ctx, user.ID)
}

func (s *DonationService) Recent(ctx context.Context) ([]*domain.Donation, error) {
	return s.donations.FindRecent(ctx, recentLimit)
}

func (s *DonationService) AvailableCountByBloodType(ctx context.Context, bloodType string) (int64, error) {
	bt, ok := domain.ParseBloodType(bloodType)
	if !ok {
		return 0, fmt.Errorf("%w: invalid blood type %q", domain.ErrInvalidInput, bloodType)
	}
	return s.donations.CountAvailableByBloodType(ctx, bt)
}
