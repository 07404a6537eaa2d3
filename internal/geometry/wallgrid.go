/*
Package geometry holds the wall model of a GridMaze tile and the pure
algorithms that work on it: enclosure detection, region flood fill, quarter
turn rotation and pixel hit-testing.

A tile of C columns and R rows of cells stores two boolean matrices.
horizontal[x][y] is the wall on top of cell (x,y) and has C × (R+1) entries.
vertical[y][x] is the wall left of cell (x,y) and has R × (C+1) entries. The
horizontal matrix is column-major and the vertical one row-major; rotation
folds that asymmetry into its reversal axes.
*/
package geometry

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// WallGrid is the wall layout of one tile. Values returned by WallGrid methods
// never share storage with the grid.
type WallGrid struct {
	columns    int
	rows       int
	horizontal [][]bool
	vertical   [][]bool
}

func newMatrix(outer, inner int, fill bool) [][]bool {
	m := make([][]bool, outer)
	for i := range m {
		m[i] = make([]bool, inner)
		if fill {
			for j := range m[i] {
				m[i][j] = true
			}
		}
	}
	return m
}

func copyMatrix(src [][]bool) [][]bool {
	dst := make([][]bool, len(src))
	for i := range src {
		dst[i] = append([]bool(nil), src[i]...)
	}
	return dst
}

// NewWallGrid returns a grid with every wall set to fill.
func NewWallGrid(columns, rows int, fill bool) (WallGrid, error) {
	if columns <= 0 || rows <= 0 {
		return WallGrid{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, columns, rows)
	}
	return WallGrid{
		columns:    columns,
		rows:       rows,
		horizontal: newMatrix(columns, rows+1, fill),
		vertical:   newMatrix(rows, columns+1, fill),
	}, nil
}

// NewRandomWallGrid returns a grid where each wall is present with the given
// probability. Draws come from rng so a seeded source reproduces the layout;
// a nil rng falls back to the shared math/rand source.
func NewRandomWallGrid(columns, rows int, probability float64, rng *rand.Rand) (WallGrid, error) {
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return WallGrid{}, fmt.Errorf("%w: got %v", ErrInvalidProbability, probability)
	}
	g, err := NewWallGrid(columns, rows, false)
	if err != nil {
		return WallGrid{}, err
	}

	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}
	for _, m := range [][][]bool{g.horizontal, g.vertical} {
		for i := range m {
			for j := range m[i] {
				m[i][j] = draw() < probability
			}
		}
	}
	return g, nil
}

// WallGridFromMatrices builds a grid from caller-owned matrices in storage
// order. The matrices are copied.
func WallGridFromMatrices(horizontal, vertical [][]bool) (WallGrid, error) {
	columns := len(horizontal)
	if columns == 0 || len(horizontal[0]) < 2 {
		return WallGrid{}, fmt.Errorf("%w: empty horizontal matrix", ErrInvalidDimensions)
	}
	rows := len(horizontal[0]) - 1

	for x, col := range horizontal {
		if len(col) != rows+1 {
			return WallGrid{}, fmt.Errorf("%w: horizontal[%d] has %d lines, want %d", ErrDimensionMismatch, x, len(col), rows+1)
		}
	}
	if len(vertical) != rows {
		return WallGrid{}, fmt.Errorf("%w: vertical has %d rows, want %d", ErrDimensionMismatch, len(vertical), rows)
	}
	for y, row := range vertical {
		if len(row) != columns+1 {
			return WallGrid{}, fmt.Errorf("%w: vertical[%d] has %d lines, want %d", ErrDimensionMismatch, y, len(row), columns+1)
		}
	}

	return WallGrid{
		columns:    columns,
		rows:       rows,
		horizontal: copyMatrix(horizontal),
		vertical:   copyMatrix(vertical),
	}, nil
}

func (g WallGrid) Columns() int { return g.columns }

func (g WallGrid) Rows() int { return g.rows }

// IsSquare reports whether the grid can be rotated without changing shape.
func (g WallGrid) IsSquare() bool { return g.columns == g.rows }

// SameShape reports whether both grids have the same cell dimensions.
func (g WallGrid) SameShape(other WallGrid) bool {
	return g.columns == other.columns && g.rows == other.rows
}

// Horizontal returns a copy of the horizontal matrix, indexed [column][line].
func (g WallGrid) Horizontal() [][]bool { return copyMatrix(g.horizontal) }

// Vertical returns a copy of the vertical matrix, indexed [row][line].
func (g WallGrid) Vertical() [][]bool { return copyMatrix(g.vertical) }

func (g WallGrid) matrix(o Orientation) ([][]bool, error) {
	switch o {
	case Horizontal:
		return g.horizontal, nil
	case Vertical:
		return g.vertical, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidOrientation, o)
}

func (g WallGrid) slot(addr WallAddress) (*bool, error) {
	m, err := g.matrix(addr.Orientation)
	if err != nil {
		return nil, err
	}
	if addr.A < 0 || addr.A >= len(m) || addr.B < 0 || addr.B >= len(m[addr.A]) {
		return nil, fmt.Errorf("%w: %s in %dx%d tile", ErrOutOfRange, addr, g.columns, g.rows)
	}
	return &m[addr.A][addr.B], nil
}

// Get reports whether the addressed wall exists.
func (g WallGrid) Get(addr WallAddress) (bool, error) {
	p, err := g.slot(addr)
	if err != nil {
		return false, err
	}
	return *p, nil
}

// Set stores value at the addressed wall.
func (g *WallGrid) Set(addr WallAddress, value bool) error {
	p, err := g.slot(addr)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Toggle flips the addressed wall and returns its new value.
func (g *WallGrid) Toggle(addr WallAddress) (bool, error) {
	p, err := g.slot(addr)
	if err != nil {
		return false, err
	}
	*p = !*p
	return *p, nil
}

// Clone returns a deep copy.
func (g WallGrid) Clone() WallGrid {
	return WallGrid{
		columns:    g.columns,
		rows:       g.rows,
		horizontal: copyMatrix(g.horizontal),
		vertical:   copyMatrix(g.vertical),
	}
}

// Equal compares shape and every wall.
func (g WallGrid) Equal(other WallGrid) bool {
	if !g.SameShape(other) {
		return false
	}
	for i := range g.horizontal {
		for j := range g.horizontal[i] {
			if g.horizontal[i][j] != other.horizontal[i][j] {
				return false
			}
		}
	}
	for i := range g.vertical {
		for j := range g.vertical[i] {
			if g.vertical[i][j] != other.vertical[i][j] {
				return false
			}
		}
	}
	return true
}

// Each calls fn for every wall, horizontal walls first.
func (g WallGrid) Each(fn func(addr WallAddress, present bool)) {
	for a := range g.horizontal {
		for b, v := range g.horizontal[a] {
			fn(WallAddress{Orientation: Horizontal, A: a, B: b}, v)
		}
	}
	for a := range g.vertical {
		for b, v := range g.vertical[a] {
			fn(WallAddress{Orientation: Vertical, A: a, B: b}, v)
		}
	}
}

// Count returns the number of walls present.
func (g WallGrid) Count() int {
	n := 0
	g.Each(func(_ WallAddress, present bool) {
		if present {
			n++
		}
	})
	return n
}

// String draws the grid in ASCII. Enclosed cells are filled with '#'.
func (g WallGrid) String() string {
	if g.columns == 0 {
		return ""
	}
	enclosed := EnclosureGrid(g)
	var b strings.Builder

	for y := 0; y <= g.rows; y++ {
		b.WriteString("+")
		for x := 0; x < g.columns; x++ {
			if g.horizontal[x][y] {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
		if y == g.rows {
			break
		}

		for x := 0; x <= g.columns; x++ {
			if g.vertical[y][x] {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
			if x == g.columns {
				break
			}
			if enclosed[x][y] {
				b.WriteString("###")
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
