package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// requestsTotal counts calls to the marketplace API.
// Labels:
//   - method: HTTP method
//   - endpoint: route template (e.g. "/companies/{id}")
//   - status: HTTP status code, or "error" when no response arrived
var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "backend_requests_total",
		Help:      "Total number of marketplace API calls.",
	},
	[]string{"method", "endpoint", "status"},
)

// requestDuration measures marketplace API latency.
var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "portal",
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of marketplace API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "endpoint"},
)
