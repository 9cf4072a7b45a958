// Package metrics defines and registers the custom Prometheus metrics of the
// HTTP layer. Backend client metrics live with the client.
//
// Metrics are registered with the default Prometheus registry when the
// package is loaded.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessRedirectsTotal counts navigations refused by the access policy.
// Labels:
//   - role: role of the visitor
//   - page: page that was refused
var AccessRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_redirects_total",
		Help:      "Total number of page loads redirected home by the access policy.",
	},
	[]string{"role", "page"},
)

// ── Session and editor metrics ────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" (validation) or "rejected" (backend)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CommitsTotal counts inline edit commits.
// Labels:
//   - kind: "company" or "profile"
//   - result: "success", "invalid" or "rejected"
var CommitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "commits_total",
		Help:      "Total number of inline edit commits, by entity kind and result.",
	},
	[]string{"kind", "result"},
)
