package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

// AuthService orchestrates registration and the two-step login flow.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	otp    ports.OTPManager
	tokens ports.TokenIssuer
	mail   ports.MailQueue
	log    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	otp ports.OTPManager,
	tokens ports.TokenIssuer,
	mail ports.MailQueue,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		otp:    otp,
		tokens: tokens,
		mail:   mail,
		log:    log,
	}
}

// Register creates an account. Username and email must both be unused.
// Unrecognised roles fall back to USER; donor attributes are only attached
// when the resolved role is DONOR. The welcome mail is best-effort: it is
// queued for async delivery and a failure never rolls back registration.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrUnknownUser) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrDuplicateIdentity
	} else if !errors.Is(err, domain.ErrUnknownEmail) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.ParseRole(in.Role),
	}

	if user.Role == domain.RoleDonor {
		if in.BloodType != "" {
			bt, ok := domain.ParseBloodType(in.BloodType)
			if !ok {
				return nil, fmt.Errorf("%w: invalid blood type %q", domain.ErrInvalidInput, in.BloodType)
			}
			user.BloodType = bt
		}
		user.Age = in.Age
		user.Contact = in.Contact
	}

	created, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.mail.Enqueue(ports.Mail{
		To:      created.Email,
		Subject: "Welcome to the blood donation network",
		Body:    "Thank you for registering. You can now log in.",
	})

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// LoginStep1 checks the password and, on success, issues a one-time code to
// the user's email. Unknown usernames and wrong passwords return the same
// ErrInvalidCredentials so the error text cannot be used to enumerate
// accounts. No token is returned at this step.
func (s *AuthService) LoginStep1(ctx context.Context, username, password string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownUser) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return domain.ErrInvalidCredentials
	}

	return s.otp.Issue(ctx, user)
}

// LoginStep2 verifies the one-time code, clears the code slot, and issues
// the bearer token. This is the only path that yields a usable token for a
// password-based login.
func (s *AuthService) LoginStep2(ctx context.Context, username, code string) (*ports.LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !s.otp.Verify(user, code) {
		return nil, domain.ErrInvalidOTP
	}

	user.ClearOTP()
	if _, err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("clear otp: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("username", user.Username).Msg("login completed")
	return &ports.LoginResult{Token: token, Username: user.Username, Role: user.Role}, nil
}

// RequestPasswordReset issues a one-time code to the account owning the
// given email address.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.otp.Issue(ctx, user)
}

// ResetPassword verifies the one-time code and stores the new password hash,
// clearing the code slot.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !s.otp.Verify(user, code) {
		return domain.ErrInvalidOTP
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = hash
	user.ClearOTP()
	if _, err := s.users.Save(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("username", user.Username).Msg("password reset")
	return nil
}
