// SPDX-License-Identifier: MIT

// Package bitvec: sentinel error set.
// Every message is prefixed with "bitvec: ..." for grep-ability. Call sites
// wrap with fmt.Errorf("Tag: %w", ErrX); callers match via errors.Is.

package bitvec

import "errors"

var (
	// ErrBadVars indicates a variable count outside [1, MaxVars].
	ErrBadVars = errors.New("bitvec: variable count out of range")

	// ErrDomain indicates a function index ≥ 2^L for the requested n.
	ErrDomain = errors.New("bitvec: function index out of domain")

	// ErrBadTable indicates a truth table whose length is not a power of two
	// or which holds values outside {0,1}.
	ErrBadTable = errors.New("bitvec: malformed truth table")

	// ErrRangeOverflow indicates that a value does not fit the 64-bit index width.
	ErrRangeOverflow = errors.New("bitvec: value exceeds 64-bit index width")
)
