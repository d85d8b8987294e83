// SPDX-License-Identifier: MIT
// Package transform_test contains test helpers.
//
// Purpose:
//   • Enumerate every selector and every truth table for small n.
//   • Provide a plain dense multiply so cross-checks do not depend on Apply.

package transform_test

import (
	"testing"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"github.com/MrOnlineCoder/qmf/transform"
	"gonum.org/v1/gonum/mat"
)

// crossCheckTol is the absolute tolerance for quick-vs-dense comparisons.
const crossCheckTol = 1e-3

// allSelectors RETURNS the 2^n selectors of length n (bit i of the mask → entry i).
func allSelectors(n int) []transform.Selector {
	out := make([]transform.Selector, 0, 1<<uint(n))
	for mask := 0; mask < 1<<uint(n); mask++ {
		s := make(transform.Selector, n)
		for i := range s {
			if mask>>uint(i)&1 == 1 {
				s[i] = transform.BlockTrue
			} else {
				s[i] = transform.BlockFalse
			}
		}
		out = append(out, s)
	}

	return out
}

// mustTable DECODES index for n variables or fails the test.
func mustTable(t testing.TB, index uint64, n int) bitvec.TruthTable {
	t.Helper()
	tbl, err := bitvec.Decode(index, n)
	if err != nil {
		t.Fatalf("Decode(%d,%d): %v", index, n, err)
	}

	return tbl
}

// mustBuild BUILDS the operator pair or fails the test.
func mustBuild(t testing.TB, n int, sel transform.Selector) *transform.Operator {
	t.Helper()
	op, err := transform.Build(n, sel)
	if err != nil {
		t.Fatalf("Build(%d,%v): %v", n, sel, err)
	}

	return op
}

// denseMul MULTIPLIES m by the 0/1 vector tbl without going through gonum's MulVec.
func denseMul(m *mat.Dense, tbl bitvec.TruthTable) []float64 {
	r, c := m.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		var sum float64
		for j := 0; j < c; j++ {
			sum += m.At(i, j) * float64(tbl[j])
		}
		out[i] = sum
	}

	return out
}

// rowsOf FLATTENS a Dense into row slices for readable equality assertions.
func rowsOf(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		mat.Row(out[i], i, m)
	}

	return out
}
