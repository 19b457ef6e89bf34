package ports

import (
	"context"
	"time"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

// CreateRequestInput carries the data for opening a blood request. Zero
// RequestDate means "today"; blank Status means Pending.
type CreateRequestInput struct {
	BloodType     string
	Amount        int
	Urgency       string
	RequesterName string
	HospitalName  string
	Reason        string
	NeededByDate  *time.Time
	RequestDate   time.Time
	Status        string
}

// RequestService is the blood-request half of the lifecycle engine.
type RequestService interface {
	Create(ctx context.Context, in CreateRequestInput, actingUsername string) (*domain.BloodRequest, error)
	Update(ctx context.Context, id string, patch domain.RequestPatch) (*domain.BloodRequest, error)
	Delete(ctx context.Context, id string) error
	// Fulfill moves Pending to Fulfilled; any other starting state is
	// domain.ErrInvalidTransition.
	Fulfill(ctx context.Context, id string) (*domain.BloodRequest, error)
	// Cancel moves Pending to Cancelled. Only the owning requester or an
	// ADMIN may cancel; everyone else gets domain.ErrForbidden.
	Cancel(ctx context.Context, id, actingUsername string) (*domain.BloodRequest, error)
	GetByID(ctx context.Context, id string) (*domain.BloodRequest, error)
	All(ctx context.Context) ([]*domain.BloodRequest, error)
	ByBloodType(ctx context.Context, bloodType string) ([]*domain.BloodRequest, error)
	Pending(ctx context.Context) ([]*domain.BloodRequest, error)
	Urgent(ctx context.Context) ([]*domain.BloodRequest, error)
	ByUser(ctx context.Context, username string) ([]*domain.BloodRequest, error)
	ByHospital(ctx context.Context, hospitalName string) ([]*domain.BloodRequest, error)
	Overdue(ctx context.Context) ([]*domain.BloodRequest, error)
	Recent(ctx context.Context) ([]*domain.BloodRequest, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	UrgentCount(ctx context.Context) (int64, error)
}
