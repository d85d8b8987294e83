// Package monotone decides whether a Boolean function is monotonic using the
// spectral criterion over the transform package's operator pair.
//
// The criterion: let F = Kf·f and G = (Kf⁻¹)ᵗ·f, spectrum s = F ⊙ G and
// energy E = Σ f[i]². The function is monotonic iff s[i] ≈ 0 for every i
// except the last and s[L-1] ≈ E, each within an absolute tolerance
// (DefaultTolerance = 0.01). Index 0 (the constant-zero function) is
// monotonic without running any transform.
//
// Oracle answers single queries; Evaluator is the allocation-free per-worker
// form used by enumeration kernels; Diagnose exposes every intermediate
// vector and the timings for debugging.
package monotone
