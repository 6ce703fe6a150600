package discovery

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchDuration tracks end-to-end search latency by the tier the
	// results came from.
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "discovery_search_duration_seconds",
		Help:    "Time taken for a medicine search by result tier",
		Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2, 5},
	}, []string{"tier"}) // tier: api, fallback, none

	// searchResults tracks the number of results returned per search.
	searchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "discovery_search_results_count",
		Help:    "Number of results returned per search",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
	})

	// availabilityTier counts availability answers by the tier that
	// resolved them.
	availabilityTier = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discovery_availability_resolutions_total",
		Help: "Availability checks resolved, by tier",
	}, []string{"tier"}) // tier: live, inventory_list, simulated, catalog, none

	// collaboratorFailures counts failed collaborator calls by operation.
	collaboratorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discovery_collaborator_failures_total",
		Help: "Failed collaborator calls by operation",
	}, []string{"op"})

	// staleSearches counts searches discarded because a newer query
	// superseded them.
	staleSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discovery_stale_searches_total",
		Help: "Searches whose results were discarded as superseded",
	})
)

// MetricsRecorder provides methods to record discovery metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordSearch records a completed search.
func (m *MetricsRecorder) RecordSearch(tier string, duration time.Duration, results int) {
	searchDuration.WithLabelValues(tier).Observe(duration.Seconds())
	searchResults.Observe(float64(results))
}

// RecordAvailabilityTier records which tier answered an availability check.
func (m *MetricsRecorder) RecordAvailabilityTier(tier string) {
	availabilityTier.WithLabelValues(tier).Inc()
}

// RecordCollaboratorFailure records a failed collaborator call.
func (m *MetricsRecorder) RecordCollaboratorFailure(op string) {
	collaboratorFailures.WithLabelValues(op).Inc()
}

// RecordStaleSearch records a search discarded as superseded.
func (m *MetricsRecorder) RecordStaleSearch() {
	staleSearches.Inc()
}
