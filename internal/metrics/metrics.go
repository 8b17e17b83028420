package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financeflow_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "financeflow_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financeflow_applications_submitted_total",
			Help: "Total number of plan applications submitted",
		},
		[]string{"plan_category"},
	)

	ApplicationDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financeflow_application_decisions_total",
			Help: "Total number of application status decisions",
		},
		[]string{"status"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financeflow_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"kind", "result"},
	)

	AdviceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "financeflow_advice_requests_total",
			Help: "Total number of advice requests sent to the generative AI service",
		},
		[]string{"result"},
	)

	AdviceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "financeflow_advice_duration_seconds",
			Help:    "Duration of advice requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)
)
