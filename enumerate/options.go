// SPDX-License-Identifier: MIT

package enumerate

import (
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// Progress is emitted after every chunk.
type Progress struct {
	Offset    uint64
	End       uint64
	Percent   float64
	Monotonic uint64 // running count after the chunk
}

// ProgressFunc observes chunk progress. It runs on the enumerating goroutine.
type ProgressFunc func(Progress)

// Option configures an Enumerator.
type Option func(*Options)

// Options stores the effective Enumerator configuration.
type Options struct {
	policy      ChunkPolicy
	deviceIndex int
	tolerance   float64 // 0 → monotone.DefaultTolerance
	logger      logrus.FieldLogger
	metrics     *Metrics
	progress    ProgressFunc
}

// WithPolicy sets the chunk policy.
func WithPolicy(p ChunkPolicy) Option {
	return func(o *Options) { o.policy = p }
}

// WithDevice selects the device index passed to Backend.Open. Panics when idx < 0.
func WithDevice(idx int) Option {
	if idx < 0 {
		panic("enumerate: WithDevice: index must be ≥ 0")
	}

	return func(o *Options) { o.deviceIndex = idx }
}

// WithTolerance sets the spectral tolerance compiled into the kernel.
// Panics when tol is NaN, ±Inf or negative.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic("enumerate: WithTolerance: tol must be finite, non-negative")
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithLogger sets the logger; nil keeps the discard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records chunk metrics on m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithProgress installs a progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.progress = fn }
}

func gatherOptions(user ...Option) Options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	o := Options{policy: DefaultPolicy(), logger: discard}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
