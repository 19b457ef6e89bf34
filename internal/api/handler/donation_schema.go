package handler

import "time"

type createDonationRequest struct {
	BloodType    string     `json:"blood_type"    validate:"required"`
	Amount       int        `json:"amount"        validate:"required,gt=0"`
	DonationDate *time.Time `json:"donation_date,omitempty"`
	Location     string     `json:"location,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Available    *bool      `json:"available,omitempty"`
}

type updateDonationRequest struct {
	BloodType    *string    `json:"blood_type,omitempty"`
	Amount       *int       `json:"amount,omitempty"`
	DonationDate *time.Time `json:"donation_date,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	Available    *bool      `json:"available,omitempty"`
	DonorID      *string    `json:"donor_id,omitempty"`
}

type eligibilityResponse struct {
	Username string `json:"username"`
	Eligible bool   `json:"eligible"`
}

type countResponse struct {
	BloodType string `json:"blood_type"`
	Count     int64  `json:"count"`
}
