package transform_test

import (
	"testing"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"github.com/MrOnlineCoder/qmf/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestBuild_KnownMatrices pins the Kronecker factor order for n=1 and n=2.
func TestBuild_KnownMatrices(t *testing.T) {
	cases := []struct {
		name string
		sel  transform.Selector
		fwd  [][]float64
		inv  [][]float64
	}{
		{
			name: "n=1 true",
			sel:  transform.Selector{transform.BlockTrue},
			fwd:  [][]float64{{1, 0}, {1, 1}},
			inv:  [][]float64{{1, -1}, {0, 1}},
		},
		{
			name: "n=1 false",
			sel:  transform.Selector{transform.BlockFalse},
			fwd:  [][]float64{{1, 1}, {0, 1}},
			inv:  [][]float64{{1, 0}, {-1, 1}},
		},
		{
			name: "n=2 true,true",
			sel:  transform.Selector{transform.BlockTrue, transform.BlockTrue},
			fwd: [][]float64{
				{1, 0, 0, 0},
				{1, 1, 0, 0},
				{1, 0, 1, 0},
				{1, 1, 1, 1},
			},
			inv: [][]float64{
				{1, -1, -1, 1},
				{0, 1, 0, -1},
				{0, 0, 1, -1},
				{0, 0, 0, 1},
			},
		},
		{
			name: "n=2 true,false (variable 0 is the outer factor)",
			sel:  transform.Selector{transform.BlockTrue, transform.BlockFalse},
			fwd: [][]float64{
				{1, 1, 0, 0},
				{0, 1, 0, 0},
				{1, 1, 1, 1},
				{0, 1, 0, 1},
			},
			inv: [][]float64{
				{1, 0, -1, 0},
				{-1, 1, 1, -1},
				{0, 0, 1, 0},
				{0, 0, -1, 1},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op := mustBuild(t, len(tc.sel), tc.sel)
			assert.Equal(t, tc.fwd, rowsOf(op.Forward()))
			assert.Equal(t, tc.inv, rowsOf(op.InverseT()))
		})
	}
}

// TestBuild_InverseMatchesNumeric checks the closed-form inverse-transpose
// against gonum's numeric inverse for every selector up to n=4.
func TestBuild_InverseMatchesNumeric(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for _, sel := range allSelectors(n) {
			op := mustBuild(t, n, sel)

			var numeric mat.Dense
			require.NoError(t, numeric.Inverse(op.Forward()), "n=%d sel=%v", n, sel)
			assert.True(t, mat.EqualApprox(numeric.T(), op.InverseT(), 1e-9), "n=%d sel=%v", n, sel)
		}
	}
}

// TestBuild_Errors covers the error priority: size → selector length → block.
func TestBuild_Errors(t *testing.T) {
	_, err := transform.Build(0, nil)
	assert.ErrorIs(t, err, transform.ErrBadSize)

	_, err = transform.Build(transform.MaxDenseVars+1, nil)
	assert.ErrorIs(t, err, transform.ErrBadSize)

	_, err = transform.Build(3, transform.Selector{transform.BlockTrue})
	assert.ErrorIs(t, err, transform.ErrSelectorLength)

	_, err = transform.Build(2, transform.Selector{transform.BlockTrue, 9})
	assert.ErrorIs(t, err, transform.ErrBadBlock)
}

// TestBuild_VerifyToggle ensures the dense check can be disabled and still yields
// the same operator.
func TestBuild_VerifyToggle(t *testing.T) {
	sel := mustUniform(t, 3, transform.BlockTrue)
	a, err := transform.Build(3, sel)
	require.NoError(t, err)
	b, err := transform.Build(3, sel, transform.WithVerify(false))
	require.NoError(t, err)
	c, err := transform.Build(3, sel, transform.WithVerifyLimit(0), transform.WithEpsilon(0))
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(c))
}

// TestBuild_CopiesSelector ensures mutating the caller's slice does not leak in.
func TestBuild_CopiesSelector(t *testing.T) {
	sel := mustUniform(t, 2, transform.BlockTrue)
	op := mustBuild(t, 2, sel)
	sel[0] = transform.BlockFalse

	assert.Equal(t, transform.Selector{transform.BlockTrue, transform.BlockTrue}, op.Selector())

	got := op.Selector()
	got[1] = transform.BlockFalse
	assert.Equal(t, transform.BlockTrue, op.Selector()[1], "accessor must return a copy")
}

// TestOperator_AccessorsAreCopies ensures Forward/InverseT cannot mutate the operator.
func TestOperator_AccessorsAreCopies(t *testing.T) {
	op := mustBuild(t, 2, mustUniform(t, 2, transform.BlockTrue))
	f := op.Forward()
	f.Set(0, 0, 42)
	assert.Equal(t, 1.0, op.Forward().At(0, 0))
	assert.Equal(t, 2, op.N())
	assert.Equal(t, 4, op.Len())
	assert.Contains(t, op.String(), "Kf_inverse")
}

// TestOperator_ApplyDimension checks ErrDimensionMismatch on both directions.
func TestOperator_ApplyDimension(t *testing.T) {
	op := mustBuild(t, 2, mustUniform(t, 2, transform.BlockTrue))
	_, err := op.Apply(bitvec.TruthTable{0, 1})
	assert.ErrorIs(t, err, transform.ErrDimensionMismatch)
	_, err = op.ApplyInverse(bitvec.TruthTable{0, 1})
	assert.ErrorIs(t, err, transform.ErrDimensionMismatch)
}

// TestOperator_EqualNil covers nil receivers.
func TestOperator_EqualNil(t *testing.T) {
	var a, b *transform.Operator
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(mustBuild(t, 1, transform.Selector{transform.BlockTrue})))
}

// TestOptions_Panics verifies programmer-error panics on nonsensical option values.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { transform.WithVerifyLimit(-1) })
	assert.Panics(t, func() { transform.WithEpsilon(-1) })
	assert.NotPanics(t, func() { transform.WithEpsilon(0) })
}
