package transform_test

import (
	"sync"
	"testing"

	"github.com/MrOnlineCoder/qmf/bitvec"
	"github.com/MrOnlineCoder/qmf/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEngine_Defaults verifies the starting state: n=2, all-true selector.
func TestEngine_Defaults(t *testing.T) {
	e, err := transform.NewEngine(transform.DefaultVars, nil)
	require.NoError(t, err)

	s := e.Snapshot()
	assert.Equal(t, 2, s.N())
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, transform.Selector{transform.BlockTrue, transform.BlockTrue}, s.Selector())
	require.NotNil(t, s.Operator())
}

// TestEngine_RebuildIdempotent changes n and back and expects the same operator.
func TestEngine_RebuildIdempotent(t *testing.T) {
	sel := transform.Selector{transform.BlockTrue, transform.BlockFalse, transform.BlockTrue}
	e, err := transform.NewEngine(3, sel)
	require.NoError(t, err)
	first := e.Snapshot()

	_, err = e.Rebuild(2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Snapshot().N())

	_, err = e.Rebuild(3, sel)
	require.NoError(t, err)
	again := e.Snapshot()

	assert.NotSame(t, first, again)
	assert.True(t, first.Operator().Equal(again.Operator()))
	assert.Equal(t, first.Selector(), again.Selector())
}

// TestEngine_RebuildErrorKeepsState ensures a failed rebuild leaves the snapshot untouched.
func TestEngine_RebuildErrorKeepsState(t *testing.T) {
	e, err := transform.NewEngine(2, nil)
	require.NoError(t, err)
	before := e.Snapshot()

	_, err = e.Rebuild(3, transform.Selector{transform.BlockTrue})
	assert.ErrorIs(t, err, transform.ErrSelectorLength)
	_, err = e.Rebuild(0, nil)
	assert.ErrorIs(t, err, transform.ErrBadSize)
	_, err = e.Rebuild(bitvec.MaxVars+1, nil)
	assert.ErrorIs(t, err, transform.ErrBadSize)

	assert.Same(t, before, e.Snapshot())
}

// TestEngine_SelectorIsCopied guards against aliasing the caller's selector.
func TestEngine_SelectorIsCopied(t *testing.T) {
	sel := transform.Selector{transform.BlockTrue, transform.BlockTrue}
	e, err := transform.NewEngine(2, sel)
	require.NoError(t, err)

	sel[0] = transform.BlockFalse
	assert.Equal(t, transform.BlockTrue, e.Snapshot().Selector()[0])
	assert.Equal(t, transform.BlockTrue, e.Snapshot().Operator().Selector()[0])
}

// TestSnapshot_QuickOnlyAboveDenseLimit checks that large n skip the dense operator.
func TestSnapshot_QuickOnlyAboveDenseLimit(t *testing.T) {
	s, err := transform.NewSnapshot(transform.MaxDenseVars+2, nil)
	require.NoError(t, err)
	assert.Nil(t, s.Operator())

	tr := s.NewTransformer()
	tbl := make(bitvec.TruthTable, s.Len())
	tbl[len(tbl)-1] = 1
	out, err := tr.Forward(nil, tbl)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out[len(out)-1])
}

// TestEngine_ConcurrentReaders rebuilds while readers run quick transforms on
// their own snapshots; run with -race.
func TestEngine_ConcurrentReaders(t *testing.T) {
	e, err := transform.NewEngine(3, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s := e.Snapshot()
				tbl := make(bitvec.TruthTable, s.Len())
				tbl[0] = 1
				out, err := s.NewTransformer().Forward(nil, tbl)
				if err != nil || len(out) != s.Len() {
					t.Errorf("snapshot n=%d: len=%d err=%v", s.N(), len(out), err)
					return
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		_, err := e.Rebuild(2+i%3, nil)
		require.NoError(t, err)
	}
	wg.Wait()
}
