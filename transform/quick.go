// SPDX-License-Identifier: MIT

// Package transform - quick (matrix-free) transform.
//
// Purpose:
//   - Compute operator × table and (operator⁻¹)ᵗ × table in O(n·L) time and
//     O(L) memory by exploiting the Kronecker structure.
//
// Algorithm (constant-geometry butterfly):
//   - Every pass reads adjacent pairs (f[2j], f[2j+1]) across the whole buffer
//     and writes row 0 of the 2×2 block to out[j] and row 1 to out[j+L/2],
//     with j ∈ [0, L/2). The pair stride and the half-point stay fixed across
//     passes.
//   - One pass applies a block to the least significant index bit (the last
//     variable still untouched) and rotates it to the most significant
//     position, so after n passes every variable has been transformed and the
//     index order is restored. Pass k therefore consumes sel[n-1-k].
//   - The inverse uses the inverse-transpose blocks in the same pass order:
//     additions of the forward direction become subtractions.
//
// Values are int64: forward entries are bounded by L, inverse entries by L in
// magnitude, so no saturation is possible for n ≤ bitvec.MaxVars.

package transform

import (
	"fmt"

	"github.com/MrOnlineCoder/qmf/bitvec"
)

const (
	ctxForward = "Forward"
	ctxInverse = "Inverse"
)

// Transformer runs quick transforms for one selector with reusable scratch buffers.
// A Transformer is NOT safe for concurrent use; give each goroutine its own.
type Transformer struct {
	sel  Selector
	l    int
	a, b []int64 // ping-pong buffers, len == l
}

// NewTransformer validates sel and allocates scratch for L = 2^len(sel).
// Errors: ErrBadSize, ErrBadBlock.
// Complexity: O(L) memory.
func NewTransformer(sel Selector) (*Transformer, error) {
	n := len(sel)
	if n < 1 || n > bitvec.MaxVars {
		return nil, fmt.Errorf("NewTransformer: n=%d: %w", n, ErrBadSize)
	}
	if err := sel.Validate(n); err != nil {
		return nil, fmt.Errorf("NewTransformer: %w", err)
	}

	return newTransformer(sel), nil
}

// newTransformer skips validation; sel must already be valid.
func newTransformer(sel Selector) *Transformer {
	l := 1 << uint(len(sel))

	return &Transformer{
		sel: sel.Clone(),
		l:   l,
		a:   make([]int64, l),
		b:   make([]int64, l),
	}
}

// N returns the number of variables.
func (t *Transformer) N() int { return len(t.sel) }

// Len returns L.
func (t *Transformer) Len() int { return t.l }

// Forward writes operator × table into dst (grown if needed) and returns it.
// Errors: ErrDimensionMismatch when len(table) != L.
// Complexity: O(n·L), no allocation when cap(dst) ≥ L.
func (t *Transformer) Forward(dst []int64, table bitvec.TruthTable) ([]int64, error) {
	if len(table) != t.l {
		return nil, fmt.Errorf("%s: len=%d L=%d: %w", ctxForward, len(table), t.l, ErrDimensionMismatch)
	}

	return t.run(dst, table, &forwardBases), nil
}

// Inverse writes (operator⁻¹)ᵗ × table into dst (grown if needed) and returns it.
// Errors: ErrDimensionMismatch when len(table) != L.
// Complexity: O(n·L), no allocation when cap(dst) ≥ L.
func (t *Transformer) Inverse(dst []int64, table bitvec.TruthTable) ([]int64, error) {
	if len(table) != t.l {
		return nil, fmt.Errorf("%s: len=%d L=%d: %w", ctxInverse, len(table), t.l, ErrDimensionMismatch)
	}

	return t.run(dst, table, &inverseBases), nil
}

// run performs the n butterfly passes.
func (t *Transformer) run(dst []int64, table bitvec.TruthTable, bases *[2]base) []int64 {
	n, l := len(t.sel), t.l
	half := l / 2

	cur, nxt := t.a, t.b
	for i, v := range table {
		cur[i] = int64(v)
	}

	for k := 0; k < n; k++ {
		blk := &bases[t.sel[n-1-k]]
		for j := 0; j < half; j++ {
			x, y := cur[2*j], cur[2*j+1]
			nxt[j] = blk[0][0]*x + blk[0][1]*y
			nxt[j+half] = blk[1][0]*x + blk[1][1]*y
		}
		cur, nxt = nxt, cur
	}

	if cap(dst) < l {
		dst = make([]int64, l)
	}
	dst = dst[:l]
	copy(dst, cur)

	return dst
}

// Forward is a one-shot operator × table for selector sel.
// Errors: ErrBadSize, ErrBadBlock, ErrDimensionMismatch.
func Forward(table bitvec.TruthTable, sel Selector) ([]int64, error) {
	t, err := NewTransformer(sel)
	if err != nil {
		return nil, err
	}

	return t.Forward(nil, table)
}

// Inverse is a one-shot (operator⁻¹)ᵗ × table for selector sel.
// Errors: ErrBadSize, ErrBadBlock, ErrDimensionMismatch.
func Inverse(table bitvec.TruthTable, sel Selector) ([]int64, error) {
	t, err := NewTransformer(sel)
	if err != nil {
		return nil, err
	}

	return t.Inverse(nil, table)
}
