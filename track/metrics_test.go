package track

import (
	"testing"

	"github.com/VictoriaMetrics/metrics"
)

func TestMetricsObserver(t *testing.T) {
	reg := NewRegistry()
	// Metric names are global within the process; use a test-unique prefix.
	obs := NewMetricsObserver("track_test_observer", reg)
	reg.Subscribe(obs)

	id1 := reg.Acquire("file", "a")
	id2 := reg.Acquire("file", "b")
	reg.Move(id1, "a@worker")
	reg.Release(id2)
	reg.Close() // id1 leaks

	if got := metrics.GetOrCreateCounter("track_test_observer_acquired_total").Get(); got != 2 {
		t.Fatalf("acquired = %d, want 2", got)
	}
	if got := metrics.GetOrCreateCounter("track_test_observer_released_total").Get(); got != 1 {
		t.Fatalf("released = %d, want 1", got)
	}
	if got := metrics.GetOrCreateCounter("track_test_observer_moved_total").Get(); got != 1 {
		t.Fatalf("moved = %d, want 1", got)
	}
	if got := metrics.GetOrCreateCounter("track_test_observer_leaked_total").Get(); got != 1 {
		t.Fatalf("leaked = %d, want 1", got)
	}
}
