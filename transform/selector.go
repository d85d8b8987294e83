// SPDX-License-Identifier: MIT

// Package transform - selector (alpha set) and fixed building blocks.
//
// Purpose:
//   - Own the per-variable block choice as an immutable, copied value.
//   - Keep the 2×2 forward blocks and their inverse-transposes in one table
//     so the dense and quick paths cannot drift apart.

package transform

import (
	"fmt"
	"strings"

	"github.com/MrOnlineCoder/qmf/bitvec"
)

// Block selects one of the two 2×2 building blocks for a variable.
type Block uint8

const (
	// BlockFalse selects [[1,1],[0,1]].
	BlockFalse Block = iota
	// BlockTrue selects [[1,0],[1,1]]; the all-true selector is the canonical
	// monotonicity transform.
	BlockTrue
)

// String renders the block the way selectors are typed: "1" or "0".
func (b Block) String() string {
	switch b {
	case BlockTrue:
		return "1"
	case BlockFalse:
		return "0"
	default:
		return fmt.Sprintf("Block(%d)", uint8(b))
	}
}

func (b Block) valid() bool { return b == BlockTrue || b == BlockFalse }

// ParseBlock accepts 1/0, t/f and true/false (case-insensitive).
// Errors: ErrBadBlock.
func ParseBlock(s string) (Block, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true":
		return BlockTrue, nil
	case "0", "f", "false":
		return BlockFalse, nil
	}

	return 0, fmt.Errorf("ParseBlock(%q): %w", s, ErrBadBlock)
}

// base is a 2×2 integer block in row-major order.
type base [2][2]int64

// forwardBases and inverseBases are indexed by Block.
// inverseBases[b] == transpose(inverse(forwardBases[b])).
var (
	forwardBases = [2]base{
		BlockFalse: {{1, 1}, {0, 1}},
		BlockTrue:  {{1, 0}, {1, 1}},
	}
	inverseBases = [2]base{
		BlockFalse: {{1, 0}, {-1, 1}},
		BlockTrue:  {{1, -1}, {0, 1}},
	}
)

// checkBases verifies fᵀ·g = I for every block pair.
// By the mixed-product rule of ⊗ this certifies the full operator pair for any n.
// Complexity: O(1).
func checkBases() error {
	for b := range forwardBases {
		f, g := forwardBases[b], inverseBases[b]
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				var sum int64
				for k := 0; k < 2; k++ {
					sum += f[k][i] * g[k][j]
				}
				var want int64
				if i == j {
					want = 1
				}
				if sum != want {
					return fmt.Errorf("block %v (%d,%d)=%d: %w", Block(b), i, j, sum, ErrInvariant)
				}
			}
		}
	}

	return nil
}

// Selector is the ordered per-variable block choice; entry i belongs to variable i.
// Selectors are values: the engine copies them on Rebuild and never mutates them.
type Selector []Block

// DefaultSelector returns the all-BlockTrue selector for n variables.
// Errors: ErrBadSize.
func DefaultSelector(n int) (Selector, error) {
	if n < 1 || n > bitvec.MaxVars {
		return nil, fmt.Errorf("DefaultSelector(%d): %w", n, ErrBadSize)
	}
	s := make(Selector, n)
	for i := range s {
		s[i] = BlockTrue
	}

	return s, nil
}

// UniformSelector returns an n-entry selector filled with b.
// Errors: ErrBadSize, ErrBadBlock.
func UniformSelector(n int, b Block) (Selector, error) {
	if !b.valid() {
		return nil, fmt.Errorf("UniformSelector: %w", ErrBadBlock)
	}
	s, err := DefaultSelector(n)
	if err != nil {
		return nil, err
	}
	for i := range s {
		s[i] = b
	}

	return s, nil
}

// ParseSelector parses one block token per variable (see ParseBlock).
// Errors: ErrBadBlock.
func ParseSelector(tokens []string) (Selector, error) {
	s := make(Selector, len(tokens))
	for i, tok := range tokens {
		b, err := ParseBlock(tok)
		if err != nil {
			return nil, fmt.Errorf("ParseSelector: entry %d: %w", i, err)
		}
		s[i] = b
	}

	return s, nil
}

// Validate checks len(s) == n and that every entry is a known block.
// Errors: ErrSelectorLength, ErrBadBlock.
// Complexity: O(n).
func (s Selector) Validate(n int) error {
	if len(s) != n {
		return fmt.Errorf("Selector.Validate: len=%d n=%d: %w", len(s), n, ErrSelectorLength)
	}
	for i, b := range s {
		if !b.valid() {
			return fmt.Errorf("Selector.Validate: entry %d: %w", i, ErrBadBlock)
		}
	}

	return nil
}

// Clone returns an independent copy.
func (s Selector) Clone() Selector {
	if s == nil {
		return nil
	}
	out := make(Selector, len(s))
	copy(out, s)

	return out
}

// Equal reports element-wise equality.
func (s Selector) Equal(o Selector) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}

	return true
}

// String renders the selector as "[1 1 0]".
func (s Selector) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = b.String()
	}

	return "[" + strings.Join(parts, " ") + "]"
}
