package transform_test

import (
	"testing"

	"github.com/MrOnlineCoder/qmf/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSelector accepts the supported spellings and rejects the rest.
func TestParseSelector(t *testing.T) {
	sel, err := transform.ParseSelector([]string{"1", "0", "t", "F", "true", "false"})
	require.NoError(t, err)
	assert.Equal(t, transform.Selector{
		transform.BlockTrue, transform.BlockFalse,
		transform.BlockTrue, transform.BlockFalse,
		transform.BlockTrue, transform.BlockFalse,
	}, sel)
	assert.Equal(t, "[1 0 1 0 1 0]", sel.String())

	_, err = transform.ParseSelector([]string{"1", "2"})
	assert.ErrorIs(t, err, transform.ErrBadBlock)
}

// TestSelector_Validate covers length and block checks.
func TestSelector_Validate(t *testing.T) {
	assert.NoError(t, transform.Selector{transform.BlockTrue}.Validate(1))
	assert.ErrorIs(t, transform.Selector{}.Validate(1), transform.ErrSelectorLength)
	assert.ErrorIs(t, transform.Selector{3}.Validate(1), transform.ErrBadBlock)
}

// TestSelector_Constructors covers DefaultSelector and UniformSelector.
func TestSelector_Constructors(t *testing.T) {
	d, err := transform.DefaultSelector(3)
	require.NoError(t, err)
	assert.Equal(t, "[1 1 1]", d.String())

	u, err := transform.UniformSelector(2, transform.BlockFalse)
	require.NoError(t, err)
	assert.Equal(t, "[0 0]", u.String())

	_, err = transform.DefaultSelector(0)
	assert.ErrorIs(t, err, transform.ErrBadSize)
	_, err = transform.UniformSelector(2, 5)
	assert.ErrorIs(t, err, transform.ErrBadBlock)
}

// TestSelector_CloneEqual covers copies and comparison.
func TestSelector_CloneEqual(t *testing.T) {
	s := transform.Selector{transform.BlockTrue, transform.BlockFalse}
	c := s.Clone()
	assert.True(t, s.Equal(c))
	c[0] = transform.BlockFalse
	assert.False(t, s.Equal(c))
	assert.False(t, s.Equal(s[:1]))
	assert.Nil(t, transform.Selector(nil).Clone())
	assert.Equal(t, "Block(7)", transform.Block(7).String())
}
