// SPDX-License-Identifier: MIT

package monotone

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"github.com/MrOnlineCoder/qmf/transform"
)

// Report carries every intermediate of one evaluation. Diagnostic only: the
// verdict is identical to IsMonotonic.
type Report struct {
	Index    uint64
	N        int
	Selector transform.Selector
	Table    bitvec.TruthTable

	Quick        []int64 // Kf × f via the quick transform
	QuickInverse []int64 // (Kf⁻¹)ᵗ × f via the quick transform
	Spectrum     []int64 // Quick ⊙ QuickInverse
	Energy       int64

	Dense         []float64 // Kf × f via the dense operator; nil above transform.MaxDenseVars
	DenseSpectrum []float64 // (Kf × f) ⊙ ((Kf⁻¹)ᵗ × f); nil above transform.MaxDenseVars

	Monotonic     bool
	TransformTime time.Duration // forward + inverse quick transform
	TotalTime     time.Duration // decode through verdict, dense path included
}

// Diagnose evaluates index under s and returns the full Report.
// Errors: ErrNilSnapshot, bitvec.ErrDomain.
func (o *Oracle) Diagnose(index uint64, s *transform.Snapshot) (*Report, error) {
	if s == nil {
		return nil, fmt.Errorf("Diagnose: %w", ErrNilSnapshot)
	}
	begin := time.Now()

	tbl, err := bitvec.Decode(index, s.N())
	if err != nil {
		return nil, fmt.Errorf("Diagnose: %w", err)
	}
	r := &Report{
		Index:    index,
		N:        s.N(),
		Selector: s.Selector(),
		Table:    tbl,
		Energy:   int64(tbl.Weight()),
	}

	tr := s.NewTransformer()
	qbegin := time.Now()
	if r.Quick, err = tr.Forward(nil, tbl); err != nil {
		return nil, fmt.Errorf("Diagnose: %w", err)
	}
	if r.QuickInverse, err = tr.Inverse(nil, tbl); err != nil {
		return nil, fmt.Errorf("Diagnose: %w", err)
	}
	r.TransformTime = time.Since(qbegin)

	r.Spectrum = make([]int64, len(tbl))
	for i := range r.Spectrum {
		r.Spectrum[i] = r.Quick[i] * r.QuickInverse[i]
	}

	if op := s.Operator(); op != nil {
		if err = r.fillDense(op); err != nil {
			return nil, fmt.Errorf("Diagnose: %w", err)
		}
	}

	r.Monotonic = index == 0 || spectralTest(r.Quick, r.QuickInverse, r.Energy, o.tol)
	r.TotalTime = time.Since(begin)

	return r, nil
}

func (r *Report) fillDense(op *transform.Operator) error {
	fwd, err := op.Apply(r.Table)
	if err != nil {
		return err
	}
	inv, err := op.ApplyInverse(r.Table)
	if err != nil {
		return err
	}
	r.Dense = fwd
	r.DenseSpectrum = make([]float64, len(fwd))
	for i := range fwd {
		r.DenseSpectrum[i] = fwd[i] * inv[i]
	}

	return nil
}

// WriteTo prints the report in the debug console layout.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "f = %s\n", r.Table)
	fmt.Fprintf(&sb, "f energy = %d\n", r.Energy)
	fmt.Fprintf(&sb, "f energy spectre = ( %s)\n", joinInts(r.Spectrum))
	if r.Dense != nil {
		fmt.Fprintf(&sb, "quick transform vector matrix = ( %s)\n", joinFloats(r.Dense))
	}
	fmt.Fprintf(&sb, "quick transform = ( %s)\n", joinInts(r.Quick))
	fmt.Fprintf(&sb, "quick inverse transform = ( %s)\n", joinInts(r.QuickInverse))
	fmt.Fprintf(&sb, "qtransform time => (%dmcs )\n", r.TransformTime.Microseconds())
	fmt.Fprintf(&sb, "total time => (%dmcs )\n", r.TotalTime.Microseconds())

	n, err := io.WriteString(w, sb.String())

	return int64(n), err
}

func joinInts(v []int64) string {
	var sb strings.Builder
	for _, x := range v {
		fmt.Fprintf(&sb, "%d ", x)
	}

	return sb.String()
}

func joinFloats(v []float64) string {
	var sb strings.Builder
	for _, x := range v {
		fmt.Fprintf(&sb, "%g ", x)
	}

	return sb.String()
}
