package domain

import (
	"strings"
	"time"
)

// AppointmentStatus is the scheduling state of a donation appointment.
// Unlike request statuses there are no guarded transitions: the status
// update operation sets whichever valid value it is given.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "Pending"
	AppointmentConfirmed AppointmentStatus = "Confirmed"
	AppointmentCompleted AppointmentStatus = "Completed"
	AppointmentCancelled AppointmentStatus = "Cancelled"
)

// ParseAppointmentStatus canonicalises a status string (case-insensitive,
// trimmed).
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	for _, st := range []AppointmentStatus{
		AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled,
	} {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// Appointment is a booked slot for donating blood. Always created Pending.
type Appointment struct {
	ID              string            `json:"id"`
	BloodType       string            `json:"blood_type"`
	AppointmentDate time.Time         `json:"appointment_date"`
	Location        string            `json:"location,omitempty"`
	Status          AppointmentStatus `json:"status"`
	UserID          string            `json:"user_id"`
	Username        string            `json:"username"`
}
