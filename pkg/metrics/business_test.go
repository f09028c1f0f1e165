package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestBusinessMetrics_RegisterAndIncrement(t *testing.T) {
	RegisterBusinessMetrics(nil)
	RegisterBusinessMetrics(nil)

	cv, ok := RateResolutions.MetricCollector.(*prometheus.CounterVec)
	require.True(t, ok)

	before := testutil.ToFloat64(cv.WithLabelValues("stale"))
	IncCounterVec(RateResolutions, "stale")
	IncCounterVec(RateResolutions, "stale")
	require.Equal(t, before+2, testutil.ToFloat64(cv.WithLabelValues("stale")))

	ObserveHistogramVec(StatisticDuration, 12.5, "mrr")
}

func TestIncCounterVec_UnregisteredIsNoop(t *testing.T) {
	m := &Metric{Name: "x", Type: "counter_vec", Args: []string{"a"}}
	require.NotPanics(t, func() { IncCounterVec(m, "a") })
}
