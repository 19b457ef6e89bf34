package domain

import "errors"

var (
	// Validation failures: bad blood type, bad urgency, non-positive amount,
	// past needed-by date.
	ErrInvalidInput = errors.New("invalid input")

	// A referenced entity id does not exist.
	ErrNotFound = errors.New("not found")

	// Identity resolution failures.
	ErrUnknownUser        = errors.New("user not found")
	ErrUnknownEmail       = errors.New("email not found")
	ErrDuplicateIdentity  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// OTP missing, expired, or mismatched. One error covers all three.
	ErrInvalidOTP = errors.New("invalid or expired code")

	// State machine guard violated.
	ErrInvalidTransition = errors.New("invalid status transition")

	// Authorization failure on an ownership-guarded mutation.
	ErrForbidden = errors.New("access forbidden")

	// Bearer token malformed, expired, or carrying a bad signature.
	ErrInvalidToken = errors.New("invalid token")
)
