package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the diff module.
type Metrics struct {
	// Comparison outcomes by rollup risk ("match" when no changes)
	Comparisons *prometheus.CounterVec

	// Number of field changes per comparison
	ChangeCount prometheus.Histogram
}

// New creates a new Metrics instance with all diff module metrics registered.
func New() *Metrics {
	return &Metrics{
		Comparisons: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docseal_diff_comparisons_total",
			Help: "Total document comparisons by rollup risk level",
		}, []string{"risk"}),

		ChangeCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docseal_diff_changes_per_comparison",
			Help:    "Number of field changes detected per comparison",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		}),
	}
}

// ObserveComparison records one comparison outcome.
func (m *Metrics) ObserveComparison(risk string, changes int) {
	if m != nil {
		if risk == "" {
			risk = "match"
		}
		m.Comparisons.WithLabelValues(risk).Inc()
		m.ChangeCount.Observe(float64(changes))
	}
}
