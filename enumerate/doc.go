// SPDX-License-Identifier: MIT

// Package enumerate drives an exhaustive classification of every Boolean
// function of n variables on a device.Device.
//
// What:
//   - Splits the index space [0, M), M = 2^(2^n), into contiguous, increasing,
//     non-overlapping chunks starting at 0. The last chunk may be shorter.
//   - Runs each chunk through an explicit barrier: upload the running totals,
//     dispatch, wait, read the totals back. Chunks never overlap in time.
//   - Reports progress after every chunk and returns the final State
//     (monotonic count, self-dual count, weight histogram).
//
// Limits:
//   - Indices are 64-bit. For n = 6 the range is clamped to 2^64 − 2 and the
//     State is marked partial with Overflow wrapping bitvec.ErrRangeOverflow.
//   - n > bitvec.MaxIndexVars is rejected.
//
// Errors:
//   - ErrBadVars, ErrBadPolicy.
//   - device.ErrDispatch (fatal: the run aborts, no partial state is returned).
//
// Example:
//
//	e := enumerate.New(device.NewCPUBackend())
//	st, err := e.Run(ctx, 3, nil)
//	// st.Monotonic == 20
package enumerate
