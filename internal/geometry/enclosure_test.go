package geometry

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnclosureGrid_AllOrNothing(t *testing.T) {
	full, err := NewWallGrid(3, 3, true)
	require.NoError(t, err)
	for _, col := range EnclosureGrid(full) {
		for _, enclosed := range col {
			assert.True(t, enclosed)
		}
	}

	empty, err := NewWallGrid(3, 3, false)
	require.NoError(t, err)
	for _, col := range EnclosureGrid(empty) {
		for _, enclosed := range col {
			assert.False(t, enclosed)
		}
	}
}

func TestIsCellEnclosed_UsesAllFourWalls(t *testing.T) {
	g, err := NewWallGrid(3, 3, false)
	require.NoError(t, err)

	walls := []WallAddress{
		{Horizontal, 1, 2}, // top of (1,2)
		{Horizontal, 1, 3}, // bottom of (1,2)
		{Vertical, 2, 1},   // left of (1,2)
		{Vertical, 2, 2},   // right of (1,2)
	}
	for i, w := range walls {
		require.NoError(t, g.Set(w, true))
		enclosed, err := IsCellEnclosed(g, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, i == len(walls)-1, enclosed, "after %d walls", i+1)
	}

	grid := EnclosureGrid(g)
	assert.True(t, grid[1][2])
	assert.False(t, grid[2][1])
}

func TestIsCellEnclosed_OutOfRange(t *testing.T) {
	g, err := NewWallGrid(3, 2, true)
	require.NoError(t, err)

	_, err = IsCellEnclosed(g, 3, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = IsCellEnclosed(g, 0, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	ok, err := IsCellEnclosed(g, 2, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnclosureGrid_IsPure(t *testing.T) {
	g, err := NewRandomWallGrid(5, 4, 0.7, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	before := g.Clone()

	first := EnclosureGrid(g)
	second := EnclosureGrid(g)

	assert.Equal(t, first, second)
	assert.True(t, before.Equal(g))
	assert.Len(t, first, 5)
	assert.Len(t, first[0], 4)
}
