package ports

import (
	"context"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

// DonationRepository defines persistence operations for donations.
// No method guarantees any particular ordering unless its name says so;
// callers that care about recency must sort or take the max themselves.
type DonationRepository interface {
	Insert(ctx context.Context, d *domain.Donation) (*domain.Donation, error)
	FindByID(ctx context.Context, id string) (*domain.Donation, error)
	// Update replaces the stored donation. Returns domain.ErrNotFound when
	// the id does not exist.
	Update(ctx context.Context, d *domain.Donation) (*domain.Donation, error)
	DeleteByID(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*domain.Donation, error)
	FindAvailable(ctx context.Context) ([]*domain.Donation, error)
	FindAvailableByBloodType(ctx context.Context, bloodType string) ([]*domain.Donation, error)
	FindByDonorID(ctx context.Context, donorID string) ([]*domain.Donation, error)
	// FindRecent returns up to limit donations ordered by donation date
	// descending.
	FindRecent(ctx context.Context, limit int64) ([]*domain.Donation, error)
	CountAvailableByBloodType(ctx context.Context, bloodType string) (int64, error)
}
