// SPDX-License-Identifier: MIT

package monotone

import "math"

// DefaultTolerance is the absolute tolerance of every spectral comparison.
const DefaultTolerance = 0.01

const panicToleranceInvalid = "monotone: WithTolerance: tol must be finite, non-negative"

// Option configures an Oracle.
type Option func(*Options)

// Options stores the effective Oracle configuration.
type Options struct {
	tol float64 // DefaultTolerance
}

// WithTolerance sets the absolute tolerance of the spectral comparisons.
// Panics when tol is NaN, ±Inf or negative.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

func gatherOptions(user ...Option) Options {
	o := Options{tol: DefaultTolerance}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
