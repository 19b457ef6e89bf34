package domain

import "time"

// Donation eligibility bounds for whole blood.
const (
	MinDonorAge          = 18
	MaxDonorAge          = 65
	DonationCooldownDays = 56
)

// Donation is a unit of donated blood. Amount is measured in pints.
//
// A donation starts available and is flipped to unavailable exactly once by
// the mark-used operation; there is no way back.
type Donation struct {
	ID            string    `json:"id"`
	BloodType     string    `json:"blood_type"`
	Amount        int       `json:"amount"`
	Available     bool      `json:"available"`
	DonationDate  time.Time `json:"donation_date"`
	Location      string    `json:"location,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	DonorID       string    `json:"donor_id"`
	DonorUsername string    `json:"donor_username"`
}

// DonationPatch carries optional fields for a partial donation update.
// A nil field means "leave untouched".
type DonationPatch struct {
	BloodType    *string
	Amount       *int
	DonationDate *time.Time
	Location     *string
	Notes        *string
	Available    *bool
	DonorID      *string
}
