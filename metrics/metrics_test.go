package metrics_test

import (
	"testing"

	"github.com/arloliu/rowseg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func getCounterValue(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	_ = c.Write(m)
	return m.GetCounter().GetValue()
}

func TestCollector_ObserveLoad(t *testing.T) {
	c, err := metrics.New(nil)
	require.NoError(t, err)

	c.ObserveLoad("Bytes", 10, 400)
	c.ObserveLoad("Bytes", 5, 100)
	c.ObserveLoad("Text", 2, 9)

	require.InDelta(t, 2, testutil.ToFloat64(c.Loads.WithLabelValues("Bytes", metrics.StatusOK)), 0)
	require.InDelta(t, 15, testutil.ToFloat64(c.Rows.WithLabelValues("Bytes")), 0)
	require.InDelta(t, 500, testutil.ToFloat64(c.PayloadBytes.WithLabelValues("Bytes")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(c.Rows.WithLabelValues("Text")), 0)
}

func TestCollector_ObserveFailure(t *testing.T) {
	c, err := metrics.New(nil)
	require.NoError(t, err)

	c.ObserveFailure("Stream", true)
	c.ObserveFailure("Text", false)

	require.InDelta(t, 1, testutil.ToFloat64(c.Loads.WithLabelValues("Stream", metrics.StatusError)), 0)
	require.InDelta(t, 1, getCounterValue(c.MalformedFrames), 0)
}

func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)
	c.ObserveLoad("Text", 1, 1)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "rowseg_loads_total")
	require.Contains(t, names, "rowseg_malformed_frames_total")

	_, err = metrics.New(reg)
	require.Error(t, err, "registering twice must fail")
}

func TestCollector_Nil(t *testing.T) {
	var c *metrics.Collector
	require.NotPanics(t, func() {
		c.ObserveLoad("Text", 1, 1)
		c.ObserveFailure("Text", true)
	})
}
