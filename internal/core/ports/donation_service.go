package ports

import (
	"context"
	"time"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

// CreateDonationInput carries the data for registering a donation. Zero
// DonationDate means "today"; nil Available means "available".
type CreateDonationInput struct {
	BloodType    string
	Amount       int
	DonationDate time.Time
	Location     string
	Notes        string
	Available    *bool
}

// DonationService is the donation half of the lifecycle engine.
type DonationService interface {
	Create(ctx context.Context, in CreateDonationInput, actingUsername string) (*domain.Donation, error)
	Update(ctx context.Context, id string, patch domain.DonationPatch) (*domain.Donation, error)
	Delete(ctx context.Context, id string) error
	// MarkUsed flips the availability latch. Idempotent: marking an
	// already-used donation succeeds.
	MarkUsed(ctx context.Context, id string) (*domain.Donation, error)
	// CanDonate fails closed: unknown users are not eligible.
	CanDonate(ctx context.Context, username string) (bool, error)
	// Donors lists every account registered with the DONOR role.
	Donors(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.Donation, error)
	All(ctx context.Context) ([]*domain.Donation, error)
	Available(ctx context.Context) ([]*domain.Donation, error)
	ByBloodType(ctx context.Context, bloodType string) ([]*domain.Donation, error)
	ByUser(ctx context.Context, username string) ([]*domain.Donation, error)
	Recent(ctx context.Context) ([]*domain.Donation, error)
	AvailableCountByBloodType(ctx context.Context, bloodType string) (int64, error)
}
