// SPDX-License-Identifier: MIT

package enumerate

import "errors"

var (
	// ErrBadVars indicates a variable count the 64-bit index space cannot enumerate.
	ErrBadVars = errors.New("enumerate: variable count out of range")

	// ErrBadPolicy indicates a chunk policy that would produce empty chunks.
	ErrBadPolicy = errors.New("enumerate: invalid chunk policy")
)
