package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the request executor. Registered on the default
// registry; consumers expose them however they expose the rest of their
// process metrics.
var (
	lmRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lmtk_requests_total",
		Help: "Total API requests by method and HTTP status",
	}, []string{"method", "status"})

	lmRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lmtk_request_duration_seconds",
		Help:    "API request duration by method",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method"})

	lmTransportRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lmtk_transport_retries_total",
		Help: "Connection-layer retry attempts",
	})

	lmRateLimitSleepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lmtk_rate_limit_sleeps_total",
		Help: "Rate-limit windows slept out",
	})

	lmRateLimitSleepSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lmtk_rate_limit_sleep_seconds",
		Help:    "Duration of rate-limit sleeps",
		Buckets: []float64{1, 5, 15, 30, 60, 120},
	})

	lmErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lmtk_errors_total",
		Help: "Failed API calls by error kind",
	}, []string{"kind"})

	lmDryRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lmtk_dry_runs_total",
		Help: "Modifying requests suppressed by dry-run mode",
	})
)
