package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the duplicate gate.
type Metrics struct {
	// Gate verdicts by dimension and recommended action
	Signals *prometheus.CounterVec

	// Full gate check latency across all dimension lookups
	CheckLatency prometheus.Histogram
}

// New creates a new Metrics instance with all duplicate gate metrics registered.
func New() *Metrics {
	return &Metrics{
		Signals: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docseal_duplicate_signals_total",
			Help: "Total duplicate gate verdicts by dimension and action",
		}, []string{"dimension", "action"}),

		CheckLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docseal_duplicate_check_duration_seconds",
			Help:    "Duration of the full duplicate check across all dimensions",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveSignal records one gate verdict.
func (m *Metrics) ObserveSignal(dimension, action string, d time.Duration) {
	if m != nil {
		if dimension == "" {
			dimension = "none"
		}
		m.Signals.WithLabelValues(dimension, action).Inc()
		m.CheckLatency.Observe(d.Seconds())
	}
}
