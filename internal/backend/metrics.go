package backend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess      = "success"
	outcomeBackendError = "backend_error"
	outcomeNetworkError = "network_error"
)

var (
	// RequestsTotal counts backend fetches by endpoint and outcome.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "botdash_backend_requests_total",
			Help: "Backend fetches by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	// RequestDuration observes backend round trip latency in seconds.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "botdash_backend_request_duration_seconds",
			Help:    "Backend round trip latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func observeRequest(endpoint string, outcome string, startedAt time.Time) {
	RequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	RequestDuration.WithLabelValues(endpoint).Observe(time.Since(startedAt).Seconds())
}
