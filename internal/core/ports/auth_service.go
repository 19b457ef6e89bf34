package ports

import (
	"context"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

// RegisterInput carries everything needed to create an account. Role is
// free-form here; the service normalises unrecognised values to USER.
// Donor attributes are only attached when the resolved role is DONOR.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Role      string
	Age       *int
	Contact   string
	BloodType string
}

// LoginResult is returned once the second login step succeeds. This is the
// only way a password login yields a usable bearer token.
type LoginResult struct {
	Token    string
	Username string
	Role     domain.Role
}

// AuthService orchestrates registration and the two-step login:
// password check and OTP issuance first, then OTP verification and
// token issuance.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// LoginStep1 checks the password and sends a one-time code. It returns
	// domain.ErrInvalidCredentials for unknown usernames and wrong passwords
	// alike, so callers cannot enumerate accounts.
	LoginStep1(ctx context.Context, username, password string) error
	// LoginStep2 verifies the one-time code and issues the bearer token.
	LoginStep2(ctx context.Context, username, code string) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// OTPManager generates and verifies time-boxed one-time codes stored on the
// user record.
type OTPManager interface {
	// Issue sets the user's code slot, persists the user, and emails the
	// code. A delivery failure is returned: without the mail the user cannot
	// complete login.
	Issue(ctx context.Context, user *domain.User) error
	// Verify reports whether candidate matches the stored, unexpired code.
	// It does not clear the slot; that is the caller's job after a
	// successful authentication step.
	Verify(user *domain.User, candidate string) bool
}
