// Package metrics exposes dispatch counters and latencies to Prometheus.
package metrics

import (
	"time"

	"orderflow/internal/core/domain/model/notification"

	"github.com/prometheus/client_golang/prometheus"
)

// DispatchMetrics implements ports.DispatchMetrics.
type DispatchMetrics struct {
	deliveries *prometheus.CounterVec
	pruned     prometheus.Counter
	duration   *prometheus.HistogramVec
}

func NewDispatchMetrics(reg prometheus.Registerer) (*DispatchMetrics, error) {
	m := &DispatchMetrics{
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orderflow",
				Name:      "push_deliveries_total",
				Help:      "number of push sends by outcome",
			},
			[]string{"outcome"},
		),
		pruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "orderflow",
				Name:      "tokens_pruned_total",
				Help:      "number of notification tokens deleted",
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "orderflow",
				Name:      "dispatch_duration_seconds",
				Help:      "time from change received to fan-out complete",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"field"},
		),
	}

	for _, c := range []prometheus.Collector{m.deliveries, m.pruned, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *DispatchMetrics) ObserveDelivery(outcome notification.Outcome) {
	m.deliveries.WithLabelValues(outcome.String()).Inc()
}

func (m *DispatchMetrics) ObservePruned(count int) {
	if count > 0 {
		m.pruned.Add(float64(count))
	}
}

func (m *DispatchMetrics) ObserveDispatch(field string, elapsed time.Duration) {
	m.duration.WithLabelValues(field).Observe(elapsed.Seconds())
}
