// SPDX-License-Identifier: MIT

package monotone

import "errors"

var (
	// ErrNilSnapshot indicates a nil transform snapshot.
	ErrNilSnapshot = errors.New("monotone: nil transform snapshot")

	// ErrDimensionMismatch indicates a truth table whose length does not match the selector.
	ErrDimensionMismatch = errors.New("monotone: dimension mismatch")
)
