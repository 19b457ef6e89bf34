package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

const defaultOTPTTL = 10 * time.Minute

// OTPManager generates, persists, and verifies one-time codes. The code and
// its expiry live on the user record itself, so issuing persists the user as
// a prerequisite for verification.
type OTPManager struct {
	users    ports.UserRepository
	notifier ports.Notifier
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

func NewOTPManager(users ports.UserRepository, notifier ports.Notifier, ttl time.Duration, log zerolog.Logger) *OTPManager {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &OTPManager{
		users:    users,
		notifier: notifier,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Issue stores a fresh 6-digit code with expiry on the user, persists the
// record, and emails the code. A delivery failure is returned to the caller:
// without the mail the user cannot complete login. Concurrent issues for the
// same user are last-writer-wins; only the newest code verifies.
func (m *OTPManager) Issue(ctx context.Context, user *domain.User) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	user.SetOTP(code, m.now().Add(m.ttl))
	if _, err := m.users.Save(ctx, user); err != nil {
		return fmt.Errorf("persist otp: %w", err)
	}

	body := "Your one-time code is: " + code
	if err := m.notifier.Send(ctx, user.Email, "Your one-time code", body); err != nil {
		m.log.Error().Err(err).Str("username", user.Username).Msg("otp delivery failed")
		return fmt.Errorf("send otp: %w", err)
	}

	m.log.Info().Str("username", user.Username).Msg("otp issued")
	return nil
}

// Verify reports whether candidate matches the stored, unexpired code.
// An empty slot, an expired code, and a mismatch all collapse to false.
// The slot is left untouched; clearing it is the caller's responsibility.
func (m *OTPManager) Verify(user *domain.User, candidate string) bool {
	if user.OTPCode == "" || user.OTPExpiry == nil {
		return false
	}
	if m.now().After(*user.OTPExpiry) {
		return false
	}
	return user.OTPCode == candidate
}

// generateCode draws a 6-digit code uniformly from [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(100000+n.Int64(), 10), nil
}
