package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Token requests by result",
		},
		[]string{"result"}, // success | failure | invalid_request | error
	)

	authDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_duration_seconds",
			Help:    "Token request duration",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Bearer token check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	authzFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_failures_total",
			Help: "Rejected bearer tokens by reason",
		},
		[]string{"reason"},
	)
)

func RecordAuthRequest(result string, d time.Duration) {
	authRequestsTotal.WithLabelValues(result).Inc()
	authDuration.Observe(d.Seconds())
}

func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

func RecordAuthzFailure(reason string) {
	authzFailuresTotal.WithLabelValues(reason).Inc()
}
