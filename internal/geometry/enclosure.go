package geometry

import "fmt"

// IsCellEnclosed reports whether all four walls around cell (x,y) exist.
func IsCellEnclosed(g WallGrid, x, y int) (bool, error) {
	if x < 0 || x >= g.columns || y < 0 || y >= g.rows {
		return false, fmt.Errorf("%w: cell (%d,%d) in %dx%d tile", ErrOutOfRange, x, y, g.columns, g.rows)
	}
	return g.cellEnclosed(x, y), nil
}

func (g WallGrid) cellEnclosed(x, y int) bool {
	topAndBottom := g.horizontal[x][y] && g.horizontal[x][y+1]
	sides := g.vertical[y][x] && g.vertical[y][x+1]
	return topAndBottom && sides
}

// EnclosureGrid classifies every cell, indexed [x][y]. The grid is only read.
func EnclosureGrid(g WallGrid) [][]bool {
	result := newMatrix(g.columns, g.rows, false)
	for x := range result {
		for y := range result[x] {
			result[x][y] = g.cellEnclosed(x, y)
		}
	}
	return result
}
