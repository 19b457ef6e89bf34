package ports

import (
	"context"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

// UserRepository is the credential store contract. Lookups return
// domain.ErrUnknownUser (or ErrUnknownEmail for FindByEmail) when no record
// matches.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Save inserts the user when ID is empty, otherwise replaces the stored
	// record. Returns domain.ErrDuplicateIdentity on a username/email clash.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
	FindByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	CountAll(ctx context.Context) (int64, error)
}
