// Package bitvec converts Boolean function indices into truth tables and back.
//
// 🚀 What is a function index?
//
//	A Boolean function of n variables is fully described by its truth table:
//	L = 2^n output bits, one per input assignment. Reading those bits as one
//	unsigned integer gives the function index, an integer in [0, 2^L).
//
//	The convention is most-significant-bit first: bit i of the index lands
//	at table position L-1-i, so table position 0 holds the highest bit.
//
// ✨ Key features:
//   - Decode / DecodeInto: index → truth table (DecodeInto reuses a buffer).
//   - Encode: truth table → index, the exact inverse of Decode.
//   - TableLen / FunctionCount: sizing helpers for n variables.
//
// ⚙️ Usage:
//
//	t, err := bitvec.Decode(8, 2) // ( 1 0 0 0 )
//	idx, err := bitvec.Encode(t)  // 8
//
// Indices are 64-bit: FunctionCount is exact for n ≤ 5 and saturates for n ≥ 6.
package bitvec
