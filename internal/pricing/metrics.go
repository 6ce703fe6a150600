package pricing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// shipmentsRecorded counts accepted ledger writes.
	shipmentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "supply_shipments_recorded_total",
		Help: "Total number of shipments accepted into the ledger",
	})

	// shipmentsRejected counts ledger writes rejected by validation.
	shipmentsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "supply_shipments_rejected_total",
		Help: "Total number of shipment writes rejected by validation",
	})

	// foldDuration tracks the time taken to fold the board.
	foldDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "priceboard_fold_duration_seconds",
		Help:    "Time taken to fold shipments into the price board",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"mode"}) // mode: incremental, rebuild

	// boardListings tracks the total number of listings on the board.
	boardListings = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "priceboard_listings",
		Help: "Total number of listings currently on the price board",
	})
)

// MetricsRecorder provides methods to record pricing metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordShipment records the outcome of a ledger write.
func (m *MetricsRecorder) RecordShipment(accepted bool) {
	if accepted {
		shipmentsRecorded.Inc()
	} else {
		shipmentsRejected.Inc()
	}
}

// RecordFold records a fold operation and the resulting board size.
func (m *MetricsRecorder) RecordFold(mode string, duration time.Duration, listings int) {
	foldDuration.WithLabelValues(mode).Observe(duration.Seconds())
	boardListings.Set(float64(listings))
}
