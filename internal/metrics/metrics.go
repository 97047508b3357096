package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tracks outbound calls to the identity provider and the CRM Web API.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crmproxy_upstream_requests_total",
			Help: "Total number of outbound upstream requests (by upstream, method and status).",
		},
		[]string{"upstream", "method", "status"},
	)

	// Measures duration of outbound upstream requests.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crmproxy_upstream_request_duration_seconds",
			Help:    "Duration of outbound upstream requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"upstream", "method"},
	)

	// Counts inbound requests rejected before any network call.
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crmproxy_validation_failures_total",
			Help: "Inbound requests rejected by field validation (by operation).",
		},
		[]string{"operation"},
	)
)

func IncUpstreamRequest(upstream, method, status string) {
	UpstreamRequestsTotal.WithLabelValues(upstream, method, status).Inc()
}

func ObserveUpstreamDuration(upstream, method string, d time.Duration) {
	UpstreamRequestDuration.WithLabelValues(upstream, method).Observe(d.Seconds())
}

func IncValidationFailure(operation string) {
	ValidationFailuresTotal.WithLabelValues(operation).Inc()
}
