// SPDX-License-Identifier: MIT

// Package transform: sentinel error set.
// Every message is prefixed with "transform: ...". Call sites wrap with
// fmt.Errorf("Tag: %w", ErrX) at the detection site; callers use errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// size -> selector length -> selector block -> dimension mismatch -> invariant.

package transform

import "errors"

var (
	// ErrBadSize indicates a vector-space size outside the supported range.
	ErrBadSize = errors.New("transform: vector space size out of range")

	// ErrSelectorLength indicates a selector whose length differs from n.
	ErrSelectorLength = errors.New("transform: selector length does not match n")

	// ErrBadBlock indicates a selector entry that is neither BlockTrue nor BlockFalse.
	ErrBadBlock = errors.New("transform: invalid building block")

	// ErrDimensionMismatch indicates a truth table whose length is not 2^n.
	ErrDimensionMismatch = errors.New("transform: dimension mismatch")

	// ErrInvariant signals an internal invariant violation: the operator pair
	// failed the Opᵀ·Inv = I check. Unreachable with the fixed building blocks,
	// but always checked.
	ErrInvariant = errors.New("transform: internal invariant violation")
)
