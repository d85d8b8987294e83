// SPDX-License-Identifier: MIT

package enumerate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the enumeration collectors. A nil *Metrics records nothing.
type Metrics struct {
	Chunks        prometheus.Counter
	Functions     prometheus.Counter
	Monotonic     prometheus.Gauge
	ChunkDuration prometheus.Histogram
}

// NewMetrics registers the enumeration collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Chunks: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "qmf_enumerate_chunks_total",
			Help: "Number of chunks dispatched and read back",
		}),
		Functions: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "qmf_enumerate_functions_total",
			Help: "Number of function indices classified",
		}),
		Monotonic: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "qmf_enumerate_monotonic",
			Help: "Running monotonic count of the current run",
		}),
		ChunkDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "qmf_enumerate_chunk_duration_seconds",
			Help:    "Wall time of one chunk barrier (upload, dispatch, read back)",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
	}
}

func (m *Metrics) observeChunk(size, monotonic uint64, took time.Duration) {
	if m == nil {
		return
	}
	m.Chunks.Inc()
	m.Functions.Add(float64(size))
	m.Monotonic.Set(float64(monotonic))
	m.ChunkDuration.Observe(took.Seconds())
}

func (m *Metrics) reset() {
	if m == nil {
		return
	}
	m.Monotonic.Set(0)
}
