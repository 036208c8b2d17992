package metrics_test

import (
	"testing"
	"time"

	"orderflow/internal/adapters/out/metrics"
	"orderflow/internal/core/domain/model/notification"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewDispatchMetrics(reg)
	require.NoError(t, err)

	m.ObserveDelivery(notification.Delivered)
	m.ObserveDelivery(notification.Delivered)
	m.ObserveDelivery(notification.PermanentlyInvalid)
	m.ObservePruned(3)
	m.ObservePruned(0)
	m.ObserveDispatch("despachado", 120*time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "orderflow_push_deliveries_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "orderflow_dispatch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "orderflow_tokens_pruned_total" {
			assert.InDelta(t, 3.0, f.GetMetric()[0].GetCounter().GetValue(), 0)
		}
	}
}

func TestNewDispatchMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewDispatchMetrics(reg)
	require.NoError(t, err)

	_, err = metrics.NewDispatchMetrics(reg)
	assert.Error(t, err)
}
