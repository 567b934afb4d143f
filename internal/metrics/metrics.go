// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method, route and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quicksplit_http_requests_total",
			Help: "HTTP requests processed, by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	// ClaimsRecorded counts claims added or replaced via ShareItem.
	ClaimsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quicksplit_claims_recorded_total",
			Help: "Item claims recorded (added or replaced).",
		},
	)

	// RecomputeDuration tracks how long a totals recompute takes.
	RecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quicksplit_recompute_duration_seconds",
			Help:    "Duration of receipt totals recomputation.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 6),
		},
	)
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
