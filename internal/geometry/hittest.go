package geometry

import "fmt"

// Layout describes how a tile is drawn: Columns × Rows cells of CellSize
// pixels each, with the grid lines on multiples of CellSize.
type Layout struct {
	Columns  int
	Rows     int
	CellSize int
}

func DefaultLayout() Layout {
	return Layout{Columns: 3, Rows: 3, CellSize: 100}
}

func (l Layout) Validate() error {
	if l.Columns <= 0 || l.Rows <= 0 || l.CellSize <= 0 {
		return fmt.Errorf("%w: layout %dx%d at %dpx", ErrInvalidDimensions, l.Columns, l.Rows, l.CellSize)
	}
	return nil
}

// Band is the half-width of the dead zone around each grid line.
func (l Layout) Band() int { return l.CellSize / 4 }

// Bounds returns the largest x and y that can still hit a wall.
func (l Layout) Bounds() (width, height int) {
	return l.Columns*l.CellSize + l.Band(), l.Rows*l.CellSize + l.Band()
}

func (l Layout) nearLine(offset int) bool {
	return offset < l.Band() || offset > l.CellSize-l.Band()
}

func (l Layout) midCell(offset int) bool {
	return offset > l.Band() && offset < l.CellSize-l.Band()
}

func (l Layout) nearestLine(p int) int {
	return (p + l.CellSize/2) / l.CellSize
}

// LocateWall maps a pixel inside the tile's drawing area to the wall it
// selects. A point selects a horizontal wall when it sits in the middle of a
// cell horizontally and close to a horizontal grid line, and a vertical wall
// in the transposed case. Cell middles, corners, points exactly on a band
// edge and points outside Bounds select nothing.
func (l Layout) LocateWall(x, y int) (WallAddress, bool) {
	if l.Validate() != nil || x < 0 || y < 0 {
		return WallAddress{}, false
	}
	if w, h := l.Bounds(); x > w || y > h {
		return WallAddress{}, false
	}

	mx, my := x%l.CellSize, y%l.CellSize
	switch {
	case l.midCell(mx) && l.nearLine(my):
		return WallAddress{Orientation: Horizontal, A: x / l.CellSize, B: l.nearestLine(y)}, true
	case l.nearLine(mx) && l.midCell(my):
		return WallAddress{Orientation: Vertical, A: y / l.CellSize, B: l.nearestLine(x)}, true
	}
	return WallAddress{}, false
}
