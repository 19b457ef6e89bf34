// Package metrics defines all custom Prometheus metrics for the blood
// donation API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blooddonation"

// RegistrationsTotal counts created accounts.
// Label:
//   - role: the resolved account role (e.g. "USER", "DONOR")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts completed two-step logins.
var LoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of completed logins.",
	},
)

// OTPIssuedTotal counts one-time codes issued.
// Label:
//   - purpose: "login" or "password_reset"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time codes issued, by purpose.",
	},
	[]string{"purpose"},
)

// OTPFailuresTotal counts rejected one-time code verifications.
var OTPFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_failures_total",
		Help:      "Total number of rejected one-time code verifications.",
	},
)

// DonationsCreatedTotal counts registered donations.
// Label:
//   - blood_type: the donation blood type (e.g. "O+")
var DonationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_created_total",
		Help:      "Total number of donations registered, by blood type.",
	},
	[]string{"blood_type"},
)

// RequestsCreatedTotal counts opened blood requests.
// Label:
//   - urgency: "Low", "Medium", or "High"
var RequestsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_created_total",
		Help:      "Total number of blood requests opened, by urgency.",
	},
	[]string{"urgency"},
)

// RequestTransitionsTotal counts request status transitions.
// Label:
//   - to: the resulting status ("Fulfilled" or "Cancelled")
var RequestTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_transitions_total",
		Help:      "Total number of request status transitions, by target status.",
	},
	[]string{"to"},
)
