package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegionMap(t *testing.T) {
	t.Run("every wall present isolates every cell", func(t *testing.T) {
		g, err := NewWallGrid(3, 3, true)
		require.NoError(t, err)
		rm := BuildRegionMap(g)
		assert.Equal(t, 9, rm.RegionsCount)
		assert.Equal(t, 4, rm.RegionAt(1, 1))
	})

	t.Run("no walls is one region", func(t *testing.T) {
		g, err := NewWallGrid(3, 3, false)
		require.NoError(t, err)
		rm := BuildRegionMap(g)
		assert.Equal(t, 1, rm.RegionsCount)
	})

	t.Run("splits by an inner vertical line", func(t *testing.T) {
		g, err := NewWallGrid(4, 3, false)
		require.NoError(t, err)
		for y := range 3 {
			require.NoError(t, g.Set(WallAddress{Vertical, y, 2}, true))
		}
		rm := BuildRegionMap(g)
		assert.Equal(t, 2, rm.RegionsCount)
		assert.Equal(t, rm.RegionAt(0, 0), rm.RegionAt(1, 2))
		assert.NotEqual(t, rm.RegionAt(1, 0), rm.RegionAt(2, 0))
		assert.Equal(t, -1, rm.RegionAt(4, 0))
	})

	t.Run("an enclosed cell is its own region", func(t *testing.T) {
		g, err := NewWallGrid(3, 3, false)
		require.NoError(t, err)
		for _, w := range []WallAddress{{Horizontal, 1, 1}, {Horizontal, 1, 2}, {Vertical, 1, 1}, {Vertical, 1, 2}} {
			require.NoError(t, g.Set(w, true))
		}
		rm := BuildRegionMap(g)
		assert.Equal(t, 2, rm.RegionsCount)
		assert.Equal(t, 1, rm.RegionAt(1, 1))
	})
}
