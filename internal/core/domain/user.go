package domain

import (
	"strings"
	"time"
)

// Role classifies what a user may do. Stored upper-case.
type Role string

const (
	RoleUser  Role = "USER"
	RoleDonor Role = "DONOR"
	RoleAdmin Role = "ADMIN"
)

// ParseRole normalises a free-form role string. Anything unrecognised
// (including empty) falls back to USER.
func ParseRole(s string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleDonor:
		return RoleDonor
	default:
		return RoleUser
	}
}

// CanAdminister reports whether the role grants admin-only operations.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

// User models a registered actor: donor, recipient, or administrator.
//
// The OTP slot (OTPCode, OTPExpiry) is transient login state: either both
// fields are set or both are cleared, never one without the other.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Age          *int       `json:"age,omitempty"`
	Contact      string     `json:"contact,omitempty"`
	BloodType    string     `json:"blood_type,omitempty"`
	OTPCode      string     `json:"-"`
	OTPExpiry    *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SetOTP populates the one-time-code slot.
func (u *User) SetOTP(code string, expiry time.Time) {
	u.OTPCode = code
	u.OTPExpiry = &expiry
}

// ClearOTP empties the one-time-code slot after a successful verification.
func (u *User) ClearOTP() {
	u.OTPCode = ""
	u.OTPExpiry = nil
}
