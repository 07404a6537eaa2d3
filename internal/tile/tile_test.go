package tile

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ko-stant/gridmaze/internal/geometry"
)

type recordingRedrawer struct {
	mu    sync.Mutex
	views []View
}

func (r *recordingRedrawer) Redraw(_ SurfaceID, v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recordingRedrawer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func newTestTile(t *testing.T, columns, rows int, seed int64) (*Tile, *recordingRedrawer) {
	t.Helper()
	walls, err := geometry.NewRandomWallGrid(columns, rows, 0.6, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	rec := &recordingRedrawer{}
	tl, err := New(Params{Surface: "canvas-1", Walls: walls, Image: "crazycat.png", Redrawer: rec})
	require.NoError(t, err)
	return tl, rec
}

func TestNew(t *testing.T) {
	walls, err := geometry.NewWallGrid(3, 3, true)
	require.NoError(t, err)

	_, err = New(Params{Walls: walls})
	assert.ErrorIs(t, err, ErrInvalidSurface)

	_, err = New(Params{Surface: "c"})
	assert.ErrorIs(t, err, geometry.ErrInvalidDimensions)

	actors, err := geometry.NewActorGrid(2, 2)
	require.NoError(t, err)
	_, err = New(Params{Surface: "c", Walls: walls, Actors: actors})
	assert.ErrorIs(t, err, geometry.ErrDimensionMismatch)

	tl, err := New(Params{Surface: "c", Walls: walls})
	require.NoError(t, err)
	assert.Equal(t, 3, tl.Actors().Columns())
	assert.Zero(t, tl.Actors().Len())
}

func TestTile_UpdateWallsCopiesInput(t *testing.T) {
	tl, rec := newTestTile(t, 3, 3, 1)

	walls, err := geometry.NewWallGrid(3, 3, true)
	require.NoError(t, err)
	require.NoError(t, tl.UpdateWalls(walls))
	assert.Equal(t, 1, rec.count())

	require.NoError(t, walls.Set(geometry.WallAddress{Orientation: geometry.Horizontal}, false))
	got := tl.Walls()
	assert.Equal(t, 24, got.Count(), "caller mutation must not reach the tile")

	require.NoError(t, got.Set(geometry.WallAddress{Orientation: geometry.Vertical}, false))
	assert.Equal(t, 24, tl.Walls().Count(), "returned grid must not alias the tile")
}

func TestTile_UpdateWallsRejectsShape(t *testing.T) {
	tl, rec := newTestTile(t, 3, 3, 1)
	before := tl.Walls()

	wrong, err := geometry.NewWallGrid(4, 4, true)
	require.NoError(t, err)
	assert.ErrorIs(t, tl.UpdateWalls(wrong), geometry.ErrDimensionMismatch)
	assert.True(t, before.Equal(tl.Walls()))
	assert.Zero(t, rec.count())
}

func TestTile_UpdateActors(t *testing.T) {
	tl, _ := newTestTile(t, 3, 3, 1)
	wizard, err := geometry.NewActor("wizard-128x128.png", 1)
	require.NoError(t, err)

	actors := tl.Actors()
	require.NoError(t, actors.Place(0, 0, wizard))
	require.NoError(t, tl.UpdateActors(actors))

	require.NoError(t, actors.Place(0, 0, nil))
	got, err := tl.Actors().At(0, 0)
	require.NoError(t, err)
	assert.Same(t, wizard, got)

	walls, err := geometry.NewWallGrid(3, 3, false)
	require.NoError(t, err)
	require.NoError(t, tl.UpdateWallsAndActors(walls, actors))
	assert.Zero(t, tl.Actors().Len())
	assert.Zero(t, tl.Walls().Count())
}

func TestTile_ToggleWallAt(t *testing.T) {
	tl, rec := newTestTile(t, 3, 3, 4)
	layout := geometry.DefaultLayout()
	before, err := tl.Walls().Get(geometry.WallAddress{Orientation: geometry.Horizontal, A: 0, B: 0})
	require.NoError(t, err)

	addr, present, err := tl.ToggleWallAt(layout, 50, 5)
	require.NoError(t, err)
	assert.Equal(t, geometry.WallAddress{Orientation: geometry.Horizontal, A: 0, B: 0}, addr)
	assert.Equal(t, !before, present)
	assert.Equal(t, 1, rec.count())

	_, _, err = tl.ToggleWallAt(layout, 50, 50)
	assert.ErrorIs(t, err, ErrNoWallNearby)
	assert.Equal(t, 1, rec.count())
}

func TestTile_RotateMatchesGeometry(t *testing.T) {
	tl, rec := newTestTile(t, 3, 3, 8)
	wizard, err := geometry.NewActor("wizard-128x128.png", 1)
	require.NoError(t, err)
	actors := tl.Actors()
	require.NoError(t, actors.Place(0, 0, wizard))
	require.NoError(t, tl.UpdateActors(actors))

	want, err := geometry.RotateWalls(tl.Walls(), geometry.Clockwise)
	require.NoError(t, err)

	require.NoError(t, tl.Rotate(geometry.Clockwise))
	assert.True(t, want.Equal(tl.Walls()))
	got, err := tl.Actors().At(2, 0)
	require.NoError(t, err)
	assert.Same(t, wizard, got)
	assert.Equal(t, 2, rec.count())
}

func TestTile_ThreeRightsMakeALeft(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		walls, err := geometry.NewRandomWallGrid(3, 3, 0.6, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		wizard, err := geometry.NewActor("wizard-128x128.png", 1)
		require.NoError(t, err)
		actors, err := geometry.NewActorGrid(3, 3)
		require.NoError(t, err)
		require.NoError(t, actors.Place(1, 0, wizard))

		right, err := New(Params{Surface: "testcanvas1", Walls: walls, Actors: actors})
		require.NoError(t, err)
		left, err := New(Params{Surface: "testcanvas2", Walls: walls, Actors: actors})
		require.NoError(t, err)

		require.NoError(t, right.Rotate(geometry.Clockwise))
		for range 3 {
			require.NoError(t, left.Rotate(geometry.CounterClockwise))
		}
		assert.True(t, right.Equal(left), "seed %d", seed)
	}
}

func TestTile_EqualNil(t *testing.T) {
	tl, _ := newTestTile(t, 3, 3, 1)
	var missing *Tile

	assert.False(t, tl.Equal(nil))
	assert.False(t, missing.Equal(tl))
	assert.True(t, tl.Equal(tl))
}

// The last view handed to the redrawer must match the committed state, even
// when writers race on the same tile.
func TestTile_RedrawsFollowMutationOrder(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		tl, rec := newTestTile(t, 3, 3, seed)
		addr := geometry.WallAddress{Orientation: geometry.Horizontal, A: 1, B: 1}

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if i%4 == 0 {
					_ = tl.Rotate(geometry.Clockwise)
					return
				}
				_, _ = tl.ToggleWall(addr)
			}(i)
		}
		wg.Wait()

		rec.mu.Lock()
		last, ok := rec.views[len(rec.views)-1].(WallView)
		rec.mu.Unlock()
		require.True(t, ok)
		assert.True(t, tl.Walls().Equal(last.Walls), "seed %d", seed)
	}
}

func TestTile_RotateNonSquareLeavesStateAlone(t *testing.T) {
	tl, rec := newTestTile(t, 3, 2, 2)
	before := tl.Walls()

	err := tl.Rotate(geometry.Clockwise)
	assert.ErrorIs(t, err, geometry.ErrDimensionMismatch)
	assert.True(t, before.Equal(tl.Walls()))
	assert.Equal(t, before.Horizontal(), tl.Walls().Horizontal())
	assert.Equal(t, before.Vertical(), tl.Walls().Vertical())
	assert.Zero(t, rec.count())
}

func TestTile_SweepLock(t *testing.T) {
	tl, rec := newTestTile(t, 3, 3, 3)
	before := tl.Walls()

	require.NoError(t, tl.BeginSweep())
	assert.True(t, tl.Sweeping())
	require.Equal(t, 1, rec.count())
	begun, ok := rec.views[0].(WallView)
	require.True(t, ok)
	assert.True(t, begun.Sweeping)

	assert.ErrorIs(t, tl.BeginSweep(), ErrSweepInProgress)
	err := tl.Rotate(geometry.Clockwise)
	assert.ErrorIs(t, err, ErrSweepInProgress)
	assert.EqualError(t, err, "tile canvas-1: tile is already rotating")
	assert.True(t, before.Equal(tl.Walls()))
	assert.Equal(t, 1, rec.count())

	require.NoError(t, tl.CommitSweep(geometry.CounterClockwise))
	assert.False(t, tl.Sweeping())
	want, err := geometry.RotateWalls(before, geometry.CounterClockwise)
	require.NoError(t, err)
	assert.True(t, want.Equal(tl.Walls()))
	require.Equal(t, 2, rec.count())
	committed, ok := rec.views[1].(WallView)
	require.True(t, ok)
	assert.False(t, committed.Sweeping)

	assert.ErrorIs(t, tl.CommitSweep(geometry.Clockwise), ErrNoSweep)
}

func TestTile_AbortSweepKeepsWalls(t *testing.T) {
	tl, rec := newTestTile(t, 3, 3, 3)
	before := tl.Walls()

	require.NoError(t, tl.BeginSweep())
	tl.AbortSweep()
	assert.False(t, tl.Sweeping())
	assert.True(t, before.Equal(tl.Walls()))
	assert.Equal(t, 2, rec.count())
	require.NoError(t, tl.BeginSweep())
}

func TestTile_ImageMode(t *testing.T) {
	tl, _ := newTestTile(t, 3, 3, 3)

	v, ok := tl.View().(WallView)
	require.True(t, ok)
	assert.Len(t, v.Enclosed, 3)

	assert.True(t, tl.ToggleImageMode())
	img, ok := tl.View().(ImageView)
	require.True(t, ok)
	assert.Equal(t, "crazycat.png", img.Image)

	assert.False(t, tl.ToggleImageMode())
	assert.False(t, tl.InImageMode())
}
