// Package metrics exposes Prometheus counters for table loads.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Load status label values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Collector groups the loader counters.
//
// A nil *Collector is valid and records nothing.
type Collector struct {
	Loads           *prometheus.CounterVec
	Rows            *prometheus.CounterVec
	PayloadBytes    *prometheus.CounterVec
	MalformedFrames prometheus.Counter
}

// New creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowseg_loads_total",
				Help: "Total number of table loads by payload mode and status",
			},
			[]string{"mode", "status"},
		),
		Rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowseg_rows_total",
				Help: "Total number of row segments handed to table builders",
			},
			[]string{"mode"},
		),
		PayloadBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowseg_payload_bytes_total",
				Help: "Total payload bytes segmented, after decompression",
			},
			[]string{"mode"},
		),
		MalformedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rowseg_malformed_frames_total",
			Help: "Total number of binary payloads rejected for malformed framing",
		}),
	}

	if reg == nil {
		return c, nil
	}

	for _, col := range []prometheus.Collector{c.Loads, c.Rows, c.PayloadBytes, c.MalformedFrames} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ObserveLoad records a successful load.
func (c *Collector) ObserveLoad(mode string, rows int, size int64) {
	if c == nil {
		return
	}

	c.Loads.WithLabelValues(mode, StatusOK).Inc()
	c.Rows.WithLabelValues(mode).Add(float64(rows))
	c.PayloadBytes.WithLabelValues(mode).Add(float64(size))
}

// ObserveFailure records a failed load. malformed marks framing failures.
func (c *Collector) ObserveFailure(mode string, malformed bool) {
	if c == nil {
		return
	}

	c.Loads.WithLabelValues(mode, StatusError).Inc()
	if malformed {
		c.MalformedFrames.Inc()
	}
}
