// Package metrics defines and registers all custom Prometheus metrics for
// the console gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// GateDecisionsTotal counts route authorization gate outcomes.
// Labels:
//   - category: "public", "guest-only", or "protected"
//   - outcome: "allow" or "redirect"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of route authorization decisions, by category and outcome.",
	},
	[]string{"category", "outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TwoFactorAttemptsTotal counts two-factor verification attempts.
// Label:
//   - result: "accepted" or "rejected"
var TwoFactorAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "two_factor_attempts_total",
		Help:      "Total number of two-factor verification attempts, by result.",
	},
	[]string{"result"},
)

// ToastsPushedTotal counts notifications pushed into the fan-out channel.
// Label:
//   - severity: "success", "error", or "info"
var ToastsPushedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toasts_pushed_total",
		Help:      "Total number of toast notifications pushed, by severity.",
	},
	[]string{"severity"},
)

// ToastsActive tracks the current size of the active toast set.
var ToastsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "toasts_active",
		Help:      "Current number of toasts in the active set.",
	},
)

// UpstreamResponsesTotal counts responses from the commerce API.
// Label:
//   - status: HTTP status code as a string, or "0" for network-level failures
var UpstreamResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_responses_total",
		Help:      "Total number of upstream commerce API responses, by status code.",
	},
	[]string{"status"},
)
