package geometry

import "fmt"

// Actor is a cosmetic token drawn on a cell. Scale shrinks the image relative
// to the cell size. Actors are compared by pointer, never by content.
type Actor struct {
	Image string
	Scale float64
}

func NewActor(image string, scale float64) (*Actor, error) {
	if scale <= 0 || scale > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidScale, scale)
	}
	return &Actor{Image: image, Scale: scale}, nil
}

// ActorGrid places at most one actor per cell, indexed [x][y].
type ActorGrid struct {
	columns int
	rows    int
	cells   [][]*Actor
}

// NewActorGrid returns an empty grid.
func NewActorGrid(columns, rows int) (ActorGrid, error) {
	if columns <= 0 || rows <= 0 {
		return ActorGrid{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, columns, rows)
	}
	cells := make([][]*Actor, columns)
	for x := range cells {
		cells[x] = make([]*Actor, rows)
	}
	return ActorGrid{columns: columns, rows: rows, cells: cells}, nil
}

func (a ActorGrid) Columns() int { return a.columns }

func (a ActorGrid) Rows() int { return a.rows }

func (a ActorGrid) inBounds(x, y int) error {
	if x < 0 || x >= a.columns || y < 0 || y >= a.rows {
		return fmt.Errorf("%w: cell (%d,%d) in %dx%d actor grid", ErrOutOfRange, x, y, a.columns, a.rows)
	}
	return nil
}

// At returns the actor on cell (x,y), nil when the cell is empty.
func (a ActorGrid) At(x, y int) (*Actor, error) {
	if err := a.inBounds(x, y); err != nil {
		return nil, err
	}
	return a.cells[x][y], nil
}

// Place puts actor on cell (x,y). A nil actor clears the cell.
func (a *ActorGrid) Place(x, y int, actor *Actor) error {
	if err := a.inBounds(x, y); err != nil {
		return err
	}
	a.cells[x][y] = actor
	return nil
}

// Clone copies the placement matrix. The actors themselves are shared.
func (a ActorGrid) Clone() ActorGrid {
	cells := make([][]*Actor, len(a.cells))
	for x := range a.cells {
		cells[x] = append([]*Actor(nil), a.cells[x]...)
	}
	return ActorGrid{columns: a.columns, rows: a.rows, cells: cells}
}

// Equal reports whether both grids hold the same actor references on the
// same cells.
func (a ActorGrid) Equal(other ActorGrid) bool {
	if a.columns != other.columns || a.rows != other.rows {
		return false
	}
	for x := range a.cells {
		for y := range a.cells[x] {
			if a.cells[x][y] != other.cells[x][y] {
				return false
			}
		}
	}
	return true
}

// Each calls fn for every occupied cell.
func (a ActorGrid) Each(fn func(x, y int, actor *Actor)) {
	for x := range a.cells {
		for y, actor := range a.cells[x] {
			if actor != nil {
				fn(x, y, actor)
			}
		}
	}
}

// Len returns the number of occupied cells.
func (a ActorGrid) Len() int {
	n := 0
	a.Each(func(int, int, *Actor) { n++ })
	return n
}
