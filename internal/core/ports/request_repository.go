package ports

import (
	"context"
	"time"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

// RequestRepository defines persistence operations for blood requests.
type RequestRepository interface {
	Insert(ctx context.Context, r *domain.BloodRequest) (*domain.BloodRequest, error)
	FindByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	// Update replaces the stored request. Returns domain.ErrNotFound when
	// the id does not exist.
	Update(ctx context.Context, r *domain.BloodRequest) (*domain.BloodRequest, error)
	DeleteByID(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*domain.BloodRequest, error)
	FindByBloodType(ctx context.Context, bloodType string) ([]*domain.BloodRequest, error)
	FindByStatus(ctx context.Context, status domain.RequestStatus) ([]*domain.BloodRequest, error)
	FindByUrgencyAndStatus(ctx context.Context, urgency domain.Urgency, status domain.RequestStatus) ([]*domain.BloodRequest, error)
	FindByRequesterID(ctx context.Context, requesterID string) ([]*domain.BloodRequest, error)
	FindByHospital(ctx context.Context, hospitalName string) ([]*domain.BloodRequest, error)
	// FindOverdue returns requests still Pending whose needed-by date falls
	// strictly before the given day.
	FindOverdue(ctx context.Context, before time.Time) ([]*domain.BloodRequest, error)
	// FindRecent returns up to limit requests ordered by request date
	// descending.
	FindRecent(ctx context.Context, limit int64) ([]*domain.BloodRequest, error)
	CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error)
	CountByUrgencyAndStatus(ctx context.Context, urgency domain.Urgency, status domain.RequestStatus) (int64, error)
}
