package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	analysisOutcomesTotal *prometheus.CounterVec
	placementLevelsTotal  *prometheus.CounterVec
	completionsTotal      *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "writerpro_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "writerpro_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "writerpro_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		analysisOutcomesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "writerpro_analysis_outcomes_total",
			Help: "Writing analyses by result source and fallback reason.",
		}, []string{"source", "reason"})

		placementLevelsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "writerpro_placement_levels_total",
			Help: "Placement attempts by resulting CEFR level.",
		}, []string{"level"})

		completionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "writerpro_completions_total",
			Help: "Exercise completion attempts by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			analysisOutcomesTotal,
			placementLevelsTotal,
			completionsTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// AnalysisOutcomes counts analyses labelled by source and fallback reason.
func AnalysisOutcomes() *prometheus.CounterVec {
	RegisterMetrics()
	return analysisOutcomesTotal
}

// PlacementLevels counts graded placement attempts per CEFR level.
func PlacementLevels() *prometheus.CounterVec {
	RegisterMetrics()
	return placementLevelsTotal
}

// Completions counts completion attempts per outcome.
func Completions() *prometheus.CounterVec {
	RegisterMetrics()
	return completionsTotal
}
