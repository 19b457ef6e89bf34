package domain

import (
	"strings"
	"time"
)

// RequestStatus is the lifecycle state of a blood request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "Pending"
	RequestFulfilled RequestStatus = "Fulfilled"
	RequestCancelled RequestStatus = "Cancelled"
)

// requestTransitions defines the allowed state machine transitions.
// Fulfilled and Cancelled are absorbing.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending: {RequestFulfilled, RequestCancelled},
}

// CanTransitionTo reports whether moving from s to next is a valid transition.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseRequestStatus canonicalises a status string (case-insensitive,
// trimmed). ok is false for blank or unrecognised values.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	for _, st := range []RequestStatus{RequestPending, RequestFulfilled, RequestCancelled} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// Urgency grades how quickly a request must be served.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// ParseUrgency canonicalises an urgency string (case-insensitive, trimmed).
func ParseUrgency(s string) (Urgency, bool) {
	for _, u := range []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh} {
		if strings.EqualFold(string(u), strings.TrimSpace(s)) {
			return u, true
		}
	}
	return "", false
}

// BloodRequest is a plea for blood of a given type, owned by the requesting
// user. Status moves from Pending to Fulfilled or Cancelled, both terminal.
type BloodRequest struct {
	ID                string        `json:"id"`
	BloodType         string        `json:"blood_type"`
	Amount            int           `json:"amount"`
	Urgency           Urgency       `json:"urgency"`
	RequesterName     string        `json:"requester_name,omitempty"`
	HospitalName      string        `json:"hospital_name,omitempty"`
	Reason            string        `json:"reason,omitempty"`
	NeededByDate      *time.Time    `json:"needed_by_date,omitempty"`
	RequestDate       time.Time     `json:"request_date"`
	Status            RequestStatus `json:"status"`
	RequesterID       string        `json:"requester_id"`
	RequesterUsername string        `json:"requester_username"`
}

// RequestPatch carries optional fields for a partial request update.
// A nil field means "leave untouched". Amount, when present, must be
// positive even though zero is its Go zero value.
type RequestPatch struct {
	BloodType     *string
	Amount        *int
	Urgency       *string
	RequesterName *string
	HospitalName  *string
	Reason        *string
	NeededByDate  *time.Time
	Status        *string
}
