// Package qmf decides whether Boolean functions are monotonic with a spectral
// criterion instead of pairwise input comparison, and counts the monotone
// functions of n variables by exhaustive, chunked enumeration.
//
// What is inside?
//
//	• Codec: function index ↔ truth table (bit i of the index is table[L-1-i])
//	• Transform: Kronecker operator Kf = B(s0) ⊗ … ⊗ B(sn-1) and its
//	  inverse-transpose, dense (gonum) and quick O(n·2^n) butterflies
//	• Oracle: f is monotonic iff (Kf·f)⊙((Kf⁻¹)ᵗ·f) is zero everywhere except
//	  the last entry, which equals the energy Σf²
//	• Enumeration: contiguous chunks dispatched to a parallel device, running
//	  totals round-tripped through the device buffers, weight histogram as CSV
//
// Layout:
//
//	bitvec/     — truth tables, index codec, 64-bit range limits
//	transform/  — selectors, dense operator pair, quick transform, engine state
//	monotone/   — the spectral oracle, per-goroutine evaluators, debug reports
//	device/     — parallel evaluator contract and the goroutine CPU backend
//	enumerate/  — chunk policy, chunk barrier, progress, metrics, histogram CSV
//	config/     — YAML configuration, logger construction
//	repl/       — line-oriented command surface (exit, #, @n, $, <index>)
//	cmd/qmf/    — cobra binary: shell, check, enumerate
//	examples/   — runnable scenarios
//
// Ground truth for n = 1..4 (constants included): 3, 6, 20, 168 monotone
// functions; 1, 2, 4, 12 of them self-dual.
//
//	go install github.com/MrOnlineCoder/qmf/cmd/qmf@latest
package qmf
