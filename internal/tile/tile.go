// Package tile binds wall grids to drawing surfaces and keeps every read and
// write of tile state on owned copies.
package tile

import (
	"fmt"
	"sync"

	"github.com/Ko-stant/gridmaze/internal/geometry"
)

// SurfaceID identifies the drawing surface (a canvas element) a tile is bound to.
type SurfaceID string

// Params configures a new Tile.
type Params struct {
	Surface SurfaceID
	Walls   geometry.WallGrid
	// Actors defaults to an empty grid of the same shape as Walls.
	Actors geometry.ActorGrid
	// Image is shown instead of the maze while image mode is on.
	Image    string
	Redrawer Redrawer
}

// Tile is one rotatable maze unit.
type Tile struct {
	surface  SurfaceID
	image    string
	redrawer Redrawer

	// drawMu orders redraws so views reach the redrawer in mutation order.
	drawMu    sync.Mutex
	mu        sync.Mutex
	walls     geometry.WallGrid
	actors    geometry.ActorGrid
	imageMode bool
	sweeping  bool
}

func New(p Params) (*Tile, error) {
	if p.Surface == "" {
		return nil, ErrInvalidSurface
	}
	if p.Walls.Columns() == 0 {
		return nil, fmt.Errorf("tile %s: %w", p.Surface, geometry.ErrInvalidDimensions)
	}

	actors := p.Actors
	if actors.Columns() == 0 {
		var err error
		actors, err = geometry.NewActorGrid(p.Walls.Columns(), p.Walls.Rows())
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", p.Surface, err)
		}
	}
	if err := checkShapes(p.Walls, actors); err != nil {
		return nil, fmt.Errorf("tile %s: %w", p.Surface, err)
	}

	r := p.Redrawer
	if r == nil {
		r = nopRedrawer{}
	}
	return &Tile{
		surface:  p.Surface,
		image:    p.Image,
		redrawer: r,
		walls:    p.Walls.Clone(),
		actors:   actors.Clone(),
	}, nil
}

func checkShapes(walls geometry.WallGrid, actors geometry.ActorGrid) error {
	if walls.Columns() != actors.Columns() || walls.Rows() != actors.Rows() {
		return fmt.Errorf("%w: walls %dx%d, actors %dx%d", geometry.ErrDimensionMismatch,
			walls.Columns(), walls.Rows(), actors.Columns(), actors.Rows())
	}
	return nil
}

func (t *Tile) Surface() SurfaceID { return t.surface }

// Walls returns a copy of the current wall grid.
func (t *Tile) Walls() geometry.WallGrid {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.walls.Clone()
}

// Actors returns a copy of the current actor placement.
func (t *Tile) Actors() geometry.ActorGrid {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.actors.Clone()
}

// UpdateWalls replaces the wall grid with a copy of walls and redraws.
func (t *Tile) UpdateWalls(walls geometry.WallGrid) error {
	return t.mutate(func() error {
		if !walls.SameShape(t.walls) {
			return fmt.Errorf("%w: tile is %dx%d, got %dx%d", geometry.ErrDimensionMismatch,
				t.walls.Columns(), t.walls.Rows(), walls.Columns(), walls.Rows())
		}
		t.walls = walls.Clone()
		return nil
	})
}

// UpdateActors replaces the actor placement with a copy of actors and redraws.
func (t *Tile) UpdateActors(actors geometry.ActorGrid) error {
	return t.mutate(func() error {
		if err := checkShapes(t.walls, actors); err != nil {
			return err
		}
		t.actors = actors.Clone()
		return nil
	})
}

// UpdateWallsAndActors replaces both grids together.
func (t *Tile) UpdateWallsAndActors(walls geometry.WallGrid, actors geometry.ActorGrid) error {
	return t.mutate(func() error {
		if !walls.SameShape(t.walls) {
			return fmt.Errorf("%w: tile is %dx%d, got %dx%d", geometry.ErrDimensionMismatch,
				t.walls.Columns(), t.walls.Rows(), walls.Columns(), walls.Rows())
		}
		if err := checkShapes(walls, actors); err != nil {
			return err
		}
		t.walls = walls.Clone()
		t.actors = actors.Clone()
		return nil
	})
}

// ToggleWall flips one wall and returns its new value.
func (t *Tile) ToggleWall(addr geometry.WallAddress) (bool, error) {
	var present bool
	err := t.mutate(func() error {
		var err error
		present, err = t.walls.Toggle(addr)
		return err
	})
	return present, err
}

// ToggleWallAt hit-tests a pixel against layout and toggles the wall found.
func (t *Tile) ToggleWallAt(layout geometry.Layout, x, y int) (geometry.WallAddress, bool, error) {
	addr, ok := layout.LocateWall(x, y)
	if !ok {
		return geometry.WallAddress{}, false, fmt.Errorf("%w: (%d,%d)", ErrNoWallNearby, x, y)
	}
	present, err := t.ToggleWall(addr)
	return addr, present, err
}

// Rotate turns the tile a quarter turn right away. Walls and actors are
// replaced together; on error neither changes. Fails with ErrSweepInProgress
// while an animated rotation holds the tile.
func (t *Tile) Rotate(dir geometry.Rotation) error {
	return t.mutate(func() error {
		if t.sweeping {
			return fmt.Errorf("tile %s: %w", t.surface, ErrSweepInProgress)
		}
		return t.rotateLocked(dir)
	})
}

func (t *Tile) rotateLocked(dir geometry.Rotation) error {
	walls, err := geometry.RotateWalls(t.walls, dir)
	if err != nil {
		return err
	}
	actors, err := geometry.RotateActors(t.actors, dir)
	if err != nil {
		return err
	}
	t.walls = walls
	t.actors = actors
	return nil
}

// BeginSweep takes the tile's rotation lock for an animated rotation and
// redraws so renderers can see the tile is busy.
func (t *Tile) BeginSweep() error {
	return t.mutate(func() error {
		if t.sweeping {
			return fmt.Errorf("tile %s: %w", t.surface, ErrSweepInProgress)
		}
		t.sweeping = true
		return nil
	})
}

// CommitSweep applies the rotation a sweep was animating and releases the
// lock, whether or not the rotation succeeds.
func (t *Tile) CommitSweep(dir geometry.Rotation) error {
	return t.mutate(func() error {
		if !t.sweeping {
			return fmt.Errorf("tile %s: %w", t.surface, ErrNoSweep)
		}
		t.sweeping = false
		return t.rotateLocked(dir)
	})
}

// AbortSweep releases the lock without touching the grids and redraws the
// tile in its committed orientation.
func (t *Tile) AbortSweep() {
	_ = t.mutate(func() error {
		t.sweeping = false
		return nil
	})
}

// Sweeping reports whether an animated rotation holds the tile.
func (t *Tile) Sweeping() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sweeping
}

// ToggleImageMode switches between the maze and the image display.
func (t *Tile) ToggleImageMode() bool {
	var on bool
	_ = t.mutate(func() error {
		t.imageMode = !t.imageMode
		on = t.imageMode
		return nil
	})
	return on
}

func (t *Tile) InImageMode() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.imageMode
}

// View returns a snapshot for the renderer.
func (t *Tile) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewLocked()
}

func (t *Tile) viewLocked() View {
	if t.imageMode {
		return ImageView{Image: t.image}
	}
	return WallView{
		Walls:    t.walls.Clone(),
		Actors:   t.actors.Clone(),
		Enclosed: geometry.EnclosureGrid(t.walls),
		Regions:  geometry.BuildRegionMap(t.walls),
		Sweeping: t.sweeping,
	}
}

// Redraw pushes the current view to the redrawer.
func (t *Tile) Redraw() {
	t.drawMu.Lock()
	defer t.drawMu.Unlock()
	t.redrawer.Redraw(t.surface, t.View())
}

// Equal compares walls and actor references; surfaces are ignored.
func (t *Tile) Equal(other *Tile) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	walls, actors := t.Walls(), t.Actors()
	return walls.Equal(other.Walls()) && actors.Equal(other.Actors())
}

// mutate runs fn under the tile lock and redraws after a successful change.
// The redrawer is called outside the state lock so it may read the tile
// again, but must not mutate it.
func (t *Tile) mutate(fn func() error) error {
	t.drawMu.Lock()
	defer t.drawMu.Unlock()

	t.mu.Lock()
	if err := fn(); err != nil {
		t.mu.Unlock()
		return err
	}
	v := t.viewLocked()
	t.mu.Unlock()

	t.redrawer.Redraw(t.surface, v)
	return nil
}
