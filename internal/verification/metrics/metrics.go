package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	// Verification outcomes by status
	Outcomes *prometheus.CounterVec

	// Full verification latency including ledger lookups
	VerifyLatency prometheus.Histogram

	// Ledger lookup latencies by lookup path
	LookupLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docseal_verification_outcomes_total",
			Help: "Total verification outcomes by status",
		}, []string{"status"}),

		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docseal_verification_duration_seconds",
			Help:    "Duration of full verification including ledger lookups",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		LookupLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docseal_verification_lookup_duration_seconds",
			Help:    "Duration of ledger lookups by lookup path",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"path"}), // path: "hash", "identifier"
	}
}

// IncrementOutcome records one verification outcome.
func (m *Metrics) IncrementOutcome(status string) {
	if m != nil {
		m.Outcomes.WithLabelValues(status).Inc()
	}
}

// ObserveVerifyLatency records the total verification duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}

// ObserveLookupLatency records the duration of one ledger lookup.
func (m *Metrics) ObserveLookupLatency(path string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(path).Observe(d.Seconds())
	}
}
