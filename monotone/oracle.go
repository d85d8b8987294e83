// SPDX-License-Identifier: MIT

// Package monotone - spectral decision procedure.
//
// Complexity quicksheet:
//   - IsMonotonic/Check: O(n·L) time, O(L) memory per call.
//   - Evaluator.Evaluate: O(n·L) time, no allocation.

package monotone

import (
	"fmt"
	"math"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"github.com/MrOnlineCoder/qmf/transform"
)

// Oracle answers single-function monotonicity queries. It holds no mutable
// state and is safe for concurrent use.
type Oracle struct {
	tol float64
}

// New returns an Oracle configured by opts.
func New(opts ...Option) *Oracle {
	o := gatherOptions(opts...)

	return &Oracle{tol: o.tol}
}

// Tolerance returns the absolute comparison tolerance.
func (o *Oracle) Tolerance() float64 { return o.tol }

// IsMonotonic decides whether function index is monotonic under snapshot s.
// Implementation:
//   - Stage 1: index 0 short-circuits to true.
//   - Stage 2: decode index for s.N() variables (ErrDomain when out of range).
//   - Stage 3: forward and inverse quick transforms, then the spectral criterion.
//
// Errors: ErrNilSnapshot, bitvec.ErrDomain.
func (o *Oracle) IsMonotonic(index uint64, s *transform.Snapshot) (bool, error) {
	if s == nil {
		return false, fmt.Errorf("IsMonotonic: %w", ErrNilSnapshot)
	}
	if index == 0 {
		return true, nil
	}

	tbl, err := bitvec.Decode(index, s.N())
	if err != nil {
		return false, fmt.Errorf("IsMonotonic: %w", err)
	}

	return o.decide(s.NewTransformer(), tbl)
}

// Check is IsMonotonic for an explicit (n, selector) pair; no dense operator is built.
// Errors: transform.ErrBadSize, transform.ErrSelectorLength, transform.ErrBadBlock,
// bitvec.ErrDomain.
func (o *Oracle) Check(index uint64, n int, sel transform.Selector) (bool, error) {
	if err := sel.Validate(n); err != nil {
		return false, fmt.Errorf("Check: %w", err)
	}
	tr, err := transform.NewTransformer(sel)
	if err != nil {
		return false, fmt.Errorf("Check: %w", err)
	}
	if index == 0 {
		return true, nil
	}

	tbl, err := bitvec.Decode(index, n)
	if err != nil {
		return false, fmt.Errorf("Check: %w", err)
	}

	return o.decide(tr, tbl)
}

// IsMonotonicTable applies the criterion to an explicit truth table, which
// lifts the 64-bit index limit for n > bitvec.MaxIndexVars.
// Errors: ErrDimensionMismatch, transform.ErrBadSize, transform.ErrBadBlock.
func (o *Oracle) IsMonotonicTable(tbl bitvec.TruthTable, sel transform.Selector) (bool, error) {
	tr, err := transform.NewTransformer(sel)
	if err != nil {
		return false, fmt.Errorf("IsMonotonicTable: %w", err)
	}
	if len(tbl) != tr.Len() {
		return false, fmt.Errorf("IsMonotonicTable: len=%d L=%d: %w", len(tbl), tr.Len(), ErrDimensionMismatch)
	}

	return o.decide(tr, tbl)
}

func (o *Oracle) decide(tr *transform.Transformer, tbl bitvec.TruthTable) (bool, error) {
	fwd, err := tr.Forward(nil, tbl)
	if err != nil {
		return false, err
	}
	inv, err := tr.Inverse(nil, tbl)
	if err != nil {
		return false, err
	}

	return spectralTest(fwd, inv, int64(tbl.Weight()), o.tol), nil
}

// spectralTest evaluates the criterion, stopping at the first violation.
// The energy of a 0/1 table equals its weight.
func spectralTest(fwd, inv []int64, energy int64, tol float64) bool {
	last := len(fwd) - 1
	for i := 0; i < last; i++ {
		if math.Abs(float64(fwd[i]*inv[i])) > tol {
			return false
		}
	}

	return math.Abs(float64(fwd[last]*inv[last]-energy)) <= tol
}

// IsSelfDual reports whether f(x) = ¬f(¬x) for every input x. Input ¬x sits at
// table position L-1-x, so the table must be antisymmetric about its centre.
// Complexity: O(L).
func IsSelfDual(tbl bitvec.TruthTable) bool {
	l := len(tbl)
	for p := 0; p < l/2; p++ {
		if tbl[p] == tbl[l-1-p] {
			return false
		}
	}

	return l > 0
}

// Verdict is the per-function outcome consumed by enumeration kernels.
type Verdict struct {
	Monotonic bool
	SelfDual  bool // only computed for monotonic functions
	Weight    int  // number of true outputs
}

// Evaluator is a reusable, allocation-free workspace for one goroutine.
// It is NOT safe for concurrent use.
type Evaluator struct {
	tol      float64
	tr       *transform.Transformer
	tbl      bitvec.TruthTable
	fwd, inv []int64
}

// NewEvaluator allocates a workspace for selector sel.
// Errors: transform.ErrBadSize, transform.ErrBadBlock.
func (o *Oracle) NewEvaluator(sel transform.Selector) (*Evaluator, error) {
	tr, err := transform.NewTransformer(sel)
	if err != nil {
		return nil, fmt.Errorf("NewEvaluator: %w", err)
	}
	l := tr.Len()

	return &Evaluator{
		tol: o.tol,
		tr:  tr,
		tbl: make(bitvec.TruthTable, l),
		fwd: make([]int64, l),
		inv: make([]int64, l),
	}, nil
}

// Evaluate classifies one function index. Bits of index at or above L are
// ignored; callers iterate only over valid ranges.
func (ev *Evaluator) Evaluate(index uint64) (Verdict, error) {
	if index == 0 {
		return Verdict{Monotonic: true}, nil
	}
	if err := bitvec.DecodeInto(ev.tbl, index); err != nil {
		return Verdict{}, err
	}

	var err error
	if ev.fwd, err = ev.tr.Forward(ev.fwd, ev.tbl); err != nil {
		return Verdict{}, err
	}
	if ev.inv, err = ev.tr.Inverse(ev.inv, ev.tbl); err != nil {
		return Verdict{}, err
	}

	w := ev.tbl.Weight()
	v := Verdict{Weight: w}
	if spectralTest(ev.fwd, ev.inv, int64(w), ev.tol) {
		v.Monotonic = true
		v.SelfDual = IsSelfDual(ev.tbl)
	}

	return v, nil
}
