package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	apiRequestsTotal  *prometheus.CounterVec
	apiLatencySeconds *prometheus.HistogramVec
	apiErrorsTotal    *prometheus.CounterVec

	evaluationSubmissionsTotal *prometheus.CounterVec
	resultReleasesTotal        *prometheus.CounterVec

	launchEventsTotal   *prometheus.CounterVec
	launchClientsActive prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		evaluationSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evaluation_submissions_total",
			Help: "Total number of evaluation submissions by outcome.",
		}, []string{"outcome"})

		resultReleasesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "result_releases_total",
			Help: "Total number of result release operations by category.",
		}, []string{"category"})

		launchEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launch_events_total",
			Help: "Total number of launch events broadcast to displays.",
		}, []string{"type"})

		launchClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "launch_stream_clients",
			Help: "Number of display clients connected to the launch stream.",
		})

		prometheus.MustRegister(
			apiRequestsTotal, apiLatencySeconds, apiErrorsTotal,
			evaluationSubmissionsTotal, resultReleasesTotal,
			launchEventsTotal, launchClientsActive,
		)
	})
}

// APIRequests exposes the counter for served requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for served requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// EvaluationSubmissions exposes the counter for evaluation submissions.
func EvaluationSubmissions() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationSubmissionsTotal
}

// ResultReleases exposes the counter for release operations.
func ResultReleases() *prometheus.CounterVec {
	RegisterMetrics()
	return resultReleasesTotal
}

// LaunchEventsTotal exposes the counter for broadcast launch events.
func LaunchEventsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return launchEventsTotal
}

// LaunchClientsActive exposes the gauge of connected display clients.
func LaunchClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return launchClientsActive
}
