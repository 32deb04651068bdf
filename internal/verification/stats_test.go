package verification

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsSnapshotMath(t *testing.T) {
	stats := NewStats()
	stats.Record(StatusSealed, 10*time.Millisecond)
	stats.Record(StatusTampered, 20*time.Millisecond)
	stats.Record(StatusNotFound, 30*time.Millisecond)
	stats.Record(StatusError, 40*time.Millisecond)

	snap := stats.Snapshot()
	assert.Equal(t, int64(4), snap.Total)
	assert.Equal(t, int64(1), snap.Sealed)
	assert.Equal(t, int64(1), snap.Tampered)
	assert.Equal(t, int64(1), snap.NotFound)
	assert.Equal(t, int64(1), snap.Failed)
	assert.InDelta(t, 0.75, snap.SuccessRate, 1e-9)
	assert.InDelta(t, 25.0, snap.AvgLatencyMsec, 1e-9)
}

func TestStatsZeroValue(t *testing.T) {
	snap := NewStats().Snapshot()
	assert.Equal(t, int64(0), snap.Total)
	assert.Zero(t, snap.SuccessRate)
	assert.Zero(t, snap.AvgLatencyMsec)
}

// TestStatsConcurrentRecord exercises the atomic increment discipline; run
// with -race to catch read-modify-write regressions.
func TestStatsConcurrentRecord(t *testing.T) {
	stats := NewStats()
	const goroutines = 16
	const perGoroutine = 200

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				stats.Record(StatusSealed, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	snap := stats.Snapshot()
	assert.Equal(t, int64(goroutines*perGoroutine), snap.Total)
	assert.Equal(t, int64(goroutines*perGoroutine), snap.Sealed)
}
