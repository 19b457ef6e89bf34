package handler

import "time"

type createRequestRequest struct {
	BloodType     string     `json:"blood_type" validate:"required"`
	Amount        int        `json:"amount"     validate:"required,gt=0"`
	Urgency       string     `json:"urgency"    validate:"required"`
	RequesterName string     `json:"requester_name,omitempty"`
	HospitalName  string     `json:"hospital_name,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	NeededByDate  *time.Time `json:"needed_by_date,omitempty"`
	RequestDate   *time.Time `json:"request_date,omitempty"`
	Status        string     `json:"status,omitempty"`
}

type updateRequestRequest struct {
	BloodType     *string    `json:"blood_type,omitempty"`
	Amount        *int       `json:"amount,omitempty"`
	Urgency       *string    `json:"urgency,omitempty"`
	RequesterName *string    `json:"requester_name,omitempty"`
	HospitalName  *string    `json:"hospital_name,omitempty"`
	Reason        *string    `json:"reason,omitempty"`
	NeededByDate  *time.Time `json:"needed_by_date,omitempty"`
	Status        *string    `json:"status,omitempty"`
}

type statusCountResponse struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type urgentCountResponse struct {
	Count int64 `json:"count"`
}
