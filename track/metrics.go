package track

import "github.com/VictoriaMetrics/metrics"

// MetricsObserver exports registry lifecycle counters through
// VictoriaMetrics. Metric names are derived from the prefix:
//
//	<prefix>_acquired_total
//	<prefix>_released_total
//	<prefix>_moved_total
//	<prefix>_leaked_total
//	<prefix>_live
type MetricsObserver struct {
	acquired *metrics.Counter
	released *metrics.Counter
	moved    *metrics.Counter
	leaked   *metrics.Counter
}

// NewMetricsObserver creates an observer for r's events. The live gauge
// reads r.Len directly, so it stays correct even if the observer is
// subscribed late.
func NewMetricsObserver(prefix string, r *Registry) *MetricsObserver {
	metrics.GetOrCreateGauge(prefix+"_live", func() float64 {
		return float64(r.Len())
	})
	return &MetricsObserver{
		acquired: metrics.GetOrCreateCounter(prefix + "_acquired_total"),
		released: metrics.GetOrCreateCounter(prefix + "_released_total"),
		moved:    metrics.GetOrCreateCounter(prefix + "_moved_total"),
		leaked:   metrics.GetOrCreateCounter(prefix + "_leaked_total"),
	}
}

// OnHandleEvent implements Observer.
func (m *MetricsObserver) OnHandleEvent(e Event) {
	switch e.Type {
	case EventAcquired:
		m.acquired.Inc()
	case EventReleased:
		m.released.Inc()
	case EventMoved:
		m.moved.Inc()
	case EventLeaked:
		m.leaked.Inc()
	}
}
