// SPDX-License-Identifier: MIT

// Package bitvec - index ↔ truth-table codec.
//
// Purpose:
//   - Provide the single source of truth for the bit-ordering convention
//     shared by the single-function path and the enumeration kernel.
//   - Keep the hot path allocation-free (DecodeInto) while the public
//     constructor (Decode) validates the domain.
//
// Complexity quicksheet:
//   - Decode/DecodeInto/Encode: O(L) time; Decode allocates O(L).

package bitvec

import (
	"fmt"
	"math"
	"math/bits"
	"strings"
)

const (
	// IndexBits is the width of a FunctionIndex.
	IndexBits = 64

	// MaxIndexVars is the largest n whose full index space fits IndexBits (L = 64).
	MaxIndexVars = 6

	// MaxVars caps the truth-table length accepted by the codec (L = 65536).
	MaxVars = 16
)

// ---------- error context tags ----------

const (
	ctxTableLen   = "TableLen"
	ctxDecode     = "Decode"
	ctxDecodeInto = "DecodeInto"
	ctxEncode     = "Encode"
)

// codecErrorf wraps a sentinel with the operation tag.
func codecErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// TruthTable holds L = 2^n outputs in {0,1}, ordered by input value.
type TruthTable []uint8

// Vars returns n for a table of length 2^n, or 0 when the length is not a power of two.
// Complexity: O(1).
func (t TruthTable) Vars() int {
	if !isPow2(len(t)) {
		return 0
	}

	return bits.TrailingZeros(uint(len(t)))
}

// Weight returns the number of true outputs (equivalently the energy Σ t[i]²).
// Complexity: O(L).
func (t TruthTable) Weight() int {
	var w int
	for _, v := range t {
		w += int(v)
	}

	return w
}

// Clone returns an independent copy of t.
func (t TruthTable) Clone() TruthTable {
	out := make(TruthTable, len(t))
	copy(out, t)

	return out
}

// String renders the table as "( 0 1 1 1 )".
func (t TruthTable) String() string {
	var sb strings.Builder
	sb.WriteString("( ")
	for _, v := range t {
		if v == 0 {
			sb.WriteString("0 ")
		} else {
			sb.WriteString("1 ")
		}
	}
	sb.WriteString(")")

	return sb.String()
}

// TableLen returns L = 2^n for n in [1, MaxVars].
// Errors: ErrBadVars.
// Complexity: O(1).
func TableLen(n int) (int, error) {
	if n < 1 || n > MaxVars {
		return 0, codecErrorf(ctxTableLen, fmt.Errorf("n=%d: %w", n, ErrBadVars))
	}

	return 1 << uint(n), nil
}

// FunctionCount returns M = 2^L, the number of Boolean functions of n variables.
// MAIN DESCRIPTION:
//   - exact reports whether M fits the 64-bit index width.
//   - When it does not (n ≥ MaxIndexVars), count saturates at math.MaxUint64
//     and exact is false; callers decide how to clamp and must report it.
//
// Errors: ErrBadVars.
// Complexity: O(1).
func FunctionCount(n int) (count uint64, exact bool, err error) {
	var l int
	if l, err = TableLen(n); err != nil {
		return 0, false, err
	}
	if l >= IndexBits {
		return math.MaxUint64, false, nil
	}

	return uint64(1) << uint(l), true, nil
}

// Decode expands index into the truth table of an n-variable function.
// Implementation:
//   - Stage 1: validate n and the domain index < 2^L.
//   - Stage 2: allocate L outputs and fill them via DecodeInto.
//
// Errors:
//   - ErrBadVars when n is out of range.
//   - ErrDomain when index has bits at or above position L.
//
// Complexity: O(L) time and memory.
func Decode(index uint64, n int) (TruthTable, error) {
	l, err := TableLen(n)
	if err != nil {
		return nil, codecErrorf(ctxDecode, err)
	}
	if l < IndexBits && index>>uint(l) != 0 {
		return nil, codecErrorf(ctxDecode, fmt.Errorf("index=%d n=%d: %w", index, n, ErrDomain))
	}

	t := make(TruthTable, l)
	fill(t, index)

	return t, nil
}

// DecodeInto writes the truth table for index into dst, whose length fixes L.
// Bits of index at or above L are ignored; the domain check is the caller's
// concern (see Decode). Used by hot loops that reuse one buffer per worker.
//
// Errors: ErrBadTable when len(dst) is not a power of two ≥ 2.
// Complexity: O(L), no allocation.
func DecodeInto(dst TruthTable, index uint64) error {
	if len(dst) < 2 || !isPow2(len(dst)) {
		return codecErrorf(ctxDecodeInto, ErrBadTable)
	}
	fill(dst, index)

	return nil
}

// Encode packs a truth table back into its function index (inverse of Decode).
// Errors:
//   - ErrBadTable when the length is not a power of two ≥ 2 or a value is not 0/1.
//   - ErrRangeOverflow when a true output maps to a bit at or above IndexBits.
//
// Complexity: O(L).
func Encode(t TruthTable) (uint64, error) {
	l := len(t)
	if l < 2 || !isPow2(l) {
		return 0, codecErrorf(ctxEncode, ErrBadTable)
	}

	var index uint64
	for p, v := range t {
		if v > 1 {
			return 0, codecErrorf(ctxEncode, fmt.Errorf("position %d value %d: %w", p, v, ErrBadTable))
		}
		if v == 0 {
			continue
		}
		bit := l - 1 - p
		if bit >= IndexBits {
			return 0, codecErrorf(ctxEncode, fmt.Errorf("position %d: %w", p, ErrRangeOverflow))
		}
		index |= uint64(1) << uint(bit)
	}

	return index, nil
}

// fill writes bit i of index into t[L-1-i].
func fill(t TruthTable, index uint64) {
	l := len(t)
	for i := 0; i < l; i++ {
		var b uint8
		if i < IndexBits {
			b = uint8(index >> uint(i) & 1)
		}
		t[l-1-i] = b
	}
}

func isPow2(x int) bool { return x > 0 && x&(x-1) == 0 }
