// SPDX-License-Identifier: MIT

// Package transform - dense Kronecker operator pair.
//
// Purpose:
//   - Materialize the L×L transition operator and its inverse-transpose on
//     gonum's mat.Dense as the reference the quick transform is checked against.
//   - Never invert numerically: the inverse-transpose is the Kronecker product
//     of the per-block inverse-transposes, which is exact in float64.
//
// Complexity quicksheet:
//   - Build: O(L²) memory; O(L³) time when the dense identity check runs.
//   - Apply/ApplyInverse: O(L²).

package transform

import (
	"fmt"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"gonum.org/v1/gonum/mat"
)

const (
	ctxBuild        = "Build"
	ctxApply        = "Operator.Apply"
	ctxApplyInverse = "Operator.ApplyInverse"
)

// Operator is an immutable (operator, inverse-transpose) pair for one (n, selector).
// All accessors return copies; an Operator may be shared freely across goroutines.
type Operator struct {
	n   int
	sel Selector
	fwd *mat.Dense // Base(sel[0]) ⊗ … ⊗ Base(sel[n-1])
	inv *mat.Dense // (fwd⁻¹)ᵗ
}

// Build constructs the operator pair for n variables and selector sel.
// Implementation:
//   - Stage 1 (Validate): 1 ≤ n ≤ MaxDenseVars; sel.Validate(n).
//   - Stage 2 (Invariant): per-block fᵀ·g = I check (always).
//   - Stage 3 (Execute): left-to-right Kronecker folds for both matrices.
//   - Stage 4 (Verify): dense Opᵀ·Inv ≈ I when enabled and n ≤ verify limit.
//
// Errors:
//   - ErrBadSize, ErrSelectorLength, ErrBadBlock on bad input.
//   - ErrInvariant when either invariant check fails.
//
// Determinism:
//   - The same (n, sel) always yields bitwise-identical matrices.
func Build(n int, sel Selector, opts ...Option) (*Operator, error) {
	o := gatherOptions(opts...)

	// Stage 1: validate.
	if n < 1 || n > MaxDenseVars {
		return nil, fmt.Errorf("%s: n=%d: %w", ctxBuild, n, ErrBadSize)
	}
	if err := sel.Validate(n); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxBuild, err)
	}

	// Stage 2: per-block invariant.
	if err := checkBases(); err != nil {
		return nil, fmt.Errorf("%s: %w", ctxBuild, err)
	}

	// Stage 3: Kronecker folds.
	op := &Operator{
		n:   n,
		sel: sel.Clone(),
		fwd: kronFold(sel, &forwardBases),
		inv: kronFold(sel, &inverseBases),
	}

	// Stage 4: dense identity check.
	if o.verify && n <= o.verifyLimit {
		if err := op.verifyIdentity(o.eps); err != nil {
			return nil, fmt.Errorf("%s: %w", ctxBuild, err)
		}
	}

	return op, nil
}

// kronFold computes bases[sel[0]] ⊗ bases[sel[1]] ⊗ … left to right.
// Complexity: O(L²) for the final product, dominated by the last fold.
func kronFold(sel Selector, bases *[2]base) *mat.Dense {
	acc := blockDense(bases[sel[0]])
	for i := 1; i < len(sel); i++ {
		next := &mat.Dense{}
		next.Kronecker(acc, blockDense(bases[sel[i]]))
		acc = next
	}

	return acc
}

func blockDense(b base) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		float64(b[0][0]), float64(b[0][1]),
		float64(b[1][0]), float64(b[1][1]),
	})
}

// verifyIdentity checks fwdᵀ·inv ≈ I, i.e. inv really is (fwd⁻¹)ᵗ.
func (op *Operator) verifyIdentity(eps float64) error {
	l := op.Len()
	var prod mat.Dense
	prod.Mul(op.fwd.T(), op.inv)

	ones := make([]float64, l)
	for i := range ones {
		ones[i] = 1
	}
	if !mat.EqualApprox(&prod, mat.NewDiagDense(l, ones), eps) {
		return fmt.Errorf("n=%d sel=%v: Opᵀ·Inv != I: %w", op.n, op.sel, ErrInvariant)
	}

	return nil
}

// N returns the number of variables.
func (op *Operator) N() int { return op.n }

// Len returns L = 2^n.
func (op *Operator) Len() int { return 1 << uint(op.n) }

// Selector returns a copy of the selector the operator was built from.
func (op *Operator) Selector() Selector { return op.sel.Clone() }

// Forward returns a copy of the transition operator.
func (op *Operator) Forward() *mat.Dense { return mat.DenseCopyOf(op.fwd) }

// InverseT returns a copy of the inverse-transform matrix (operator⁻¹)ᵗ.
func (op *Operator) InverseT() *mat.Dense { return mat.DenseCopyOf(op.inv) }

// Equal reports whether two operators hold identical matrices and selectors.
func (op *Operator) Equal(other *Operator) bool {
	if op == nil || other == nil {
		return op == other
	}

	return op.n == other.n &&
		op.sel.Equal(other.sel) &&
		mat.Equal(op.fwd, other.fwd) &&
		mat.Equal(op.inv, other.inv)
}

// Apply returns operator × table.
// Errors: ErrDimensionMismatch when len(table) != L.
// Complexity: O(L²).
func (op *Operator) Apply(table bitvec.TruthTable) ([]float64, error) {
	return op.mulVec(ctxApply, op.fwd, table)
}

// ApplyInverse returns (operator⁻¹)ᵗ × table.
// Errors: ErrDimensionMismatch when len(table) != L.
// Complexity: O(L²).
func (op *Operator) ApplyInverse(table bitvec.TruthTable) ([]float64, error) {
	return op.mulVec(ctxApplyInverse, op.inv, table)
}

func (op *Operator) mulVec(tag string, m *mat.Dense, table bitvec.TruthTable) ([]float64, error) {
	l := op.Len()
	if len(table) != l {
		return nil, fmt.Errorf("%s: len=%d L=%d: %w", tag, len(table), l, ErrDimensionMismatch)
	}

	x := make([]float64, l)
	for i, v := range table {
		x[i] = float64(v)
	}
	var y mat.VecDense
	y.MulVec(m, mat.NewVecDense(l, x))

	out := make([]float64, l)
	for i := range out {
		out[i] = y.AtVec(i)
	}

	return out, nil
}

// String renders both matrices the way the debug console prints them.
func (op *Operator) String() string {
	return fmt.Sprintf("Kf:\n%v\nKf_inverse:\n%v",
		mat.Formatted(op.fwd, mat.Squeeze()),
		mat.Formatted(op.inv, mat.Squeeze()))
}
