// SPDX-License-Identifier: MIT

// Package transform: functional configuration for Build and Engine.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: WithX panics only on nonsensical values (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.

package transform

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultVars is the vector-space size an Engine starts with.
	DefaultVars = 2

	// MaxDenseVars caps the dense operator at 1024×1024; larger n use the quick path only.
	MaxDenseVars = 10

	// DefaultVerify enables the dense Opᵀ·Inv = I check in Build.
	DefaultVerify = true

	// DefaultVerifyLimit is the largest n for which the O(L³) dense check runs.
	DefaultVerifyLimit = 8

	// DefaultEpsilon is the absolute tolerance of the dense identity check.
	DefaultEpsilon = 1e-9
)

const (
	panicVerifyLimitInvalid = "transform: WithVerifyLimit: limit must be >= 0"
	panicEpsilonInvalid     = "transform: WithEpsilon: eps must be finite, non-negative"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	verify      bool    // DefaultVerify
	verifyLimit int     // DefaultVerifyLimit
	eps         float64 // DefaultEpsilon
}

// WithVerify toggles the dense identity check performed by Build.
// The O(1) per-block invariant check always runs regardless of this flag.
func WithVerify(on bool) Option {
	return func(o *Options) { o.verify = on }
}

// WithVerifyLimit sets the largest n for which the dense check runs.
// Panics when limit < 0.
func WithVerifyLimit(limit int) Option {
	if limit < 0 {
		panic(panicVerifyLimitInvalid)
	}

	return func(o *Options) { o.verifyLimit = limit }
}

// WithEpsilon sets the tolerance of the dense identity check.
// Panics when eps is NaN, ±Inf or negative.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

func defaultOptions() Options {
	return Options{
		verify:      DefaultVerify,
		verifyLimit: DefaultVerifyLimit,
		eps:         DefaultEpsilon,
	}
}

func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
