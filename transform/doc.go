// Package transform builds the Kronecker transition operator used by the
// spectral monotonicity test and its linear-time quick equivalent.
//
// 🚀 What is the transition operator?
//
//	Each variable contributes one 2×2 building block chosen by the selector
//	(the "alpha set"):
//
//	  True  = [[1,0],[1,1]]      False = [[1,1],[0,1]]
//
//	The n-variable operator is Base(sel[0]) ⊗ Base(sel[1]) ⊗ … ⊗ Base(sel[n-1]),
//	so variable 0 is the most significant Kronecker factor. Its paired
//	inverse-transform is (operator⁻¹)ᵗ, which factors the same way over the
//	per-block inverse-transposes and is therefore built in closed form.
//
// ✨ Key features:
//   - Build: dense L×L operator pair on gonum's mat.Dense (n ≤ MaxDenseVars).
//   - Transformer / Forward / Inverse: O(n·L) butterfly, no matrix at all.
//   - Engine: holds the current (n, selector, operator) snapshot and replaces
//     it atomically on Rebuild; snapshots are immutable and safe to share.
//
// ⚙️ Usage:
//
//	sel, _ := transform.DefaultSelector(3)
//	op, _ := transform.Build(3, sel)
//	dense, _ := op.Apply(table)
//	quick, _ := transform.Forward(table, sel) // same values, O(n·L)
//
// Performance:
//
//   - Build: O(L²) memory, O(L³) when dense verification is enabled.
//   - Forward/Inverse: O(n·L) time, O(L) memory.
package transform
