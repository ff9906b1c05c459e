// Package metrics defines all custom Prometheus metrics for the account
// service. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at init time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// RegistrationsTotal counts successfully registered users.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful user registrations.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "unverified"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// VerificationsConsumedTotal counts email verification attempts.
// Label:
//   - result: "success" or "invalid"
var VerificationsConsumedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verifications_consumed_total",
		Help:      "Total number of verification code submissions, labelled by result.",
	},
	[]string{"result"},
)

// VerificationMailsTotal counts verification mail deliveries.
// Label:
//   - result: "sent" or "error"
var VerificationMailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_mails_total",
		Help:      "Total number of verification mails handed to the mail provider, labelled by result.",
	},
	[]string{"result"},
)
