package verification

import (
	"sync/atomic"
	"time"
)

// Stats is the process-wide rolling verification counter. Observability only,
// not part of correctness. All fields advance with atomic operations so any
// number of verifications can record concurrently without locks.
type Stats struct {
	total        atomic.Int64
	sealed       atomic.Int64
	tampered     atomic.Int64
	notFound     atomic.Int64
	failed       atomic.Int64
	latencyNanos atomic.Int64
}

func NewStats() *Stats {
	return &Stats{}
}

// Record registers one completed verification and its latency.
func (s *Stats) Record(status Status, elapsed time.Duration) {
	s.total.Add(1)
	s.latencyNanos.Add(int64(elapsed))
	switch status {
	case StatusSealed:
		s.sealed.Add(1)
	case StatusTampered:
		s.tampered.Add(1)
	case StatusNotFound:
		s.notFound.Add(1)
	case StatusError:
		s.failed.Add(1)
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Total          int64   `json:"total"`
	Sealed         int64   `json:"sealed"`
	Tampered       int64   `json:"tampered"`
	NotFound       int64   `json:"not_found"`
	Failed         int64   `json:"failed"`
	SuccessRate    float64 `json:"success_rate"`
	AvgLatencyMsec float64 `json:"avg_latency_ms"`
}

// Snapshot reads the counters. Individual loads are atomic; the snapshot as a
// whole is approximate under concurrent writes, which is fine for stats.
func (s *Stats) Snapshot() Snapshot {
	snap := Snapshot{
		Total:    s.total.Load(),
		Sealed:   s.sealed.Load(),
		Tampered: s.tampered.Load(),
		NotFound: s.notFound.Load(),
		Failed:   s.failed.Load(),
	}
	if snap.Total > 0 {
		// A verification "succeeds" when it produced a definite answer.
		snap.SuccessRate = float64(snap.Total-snap.Failed) / float64(snap.Total)
		snap.AvgLatencyMsec = float64(s.latencyNanos.Load()) / float64(snap.Total) / 1e6
	}
	return snap
}
