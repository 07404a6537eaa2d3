package geometry

import "fmt"

// RotateWalls returns the layout of g after turning the whole tile a quarter
// turn. Only square tiles keep their matrix shapes under rotation; anything
// else fails with ErrDimensionMismatch and g is left as it was.
//
// Both matrices swap roles. Clockwise, the new horizontal matrix is the old
// vertical one with its rows reversed and the new vertical matrix is the old
// horizontal one with each column's lines reversed. Counter-clockwise applies
// the reversals the other way round.
func RotateWalls(g WallGrid, dir Rotation) (WallGrid, error) {
	if !g.IsSquare() || g.columns == 0 {
		return WallGrid{}, fmt.Errorf("%w: cannot rotate %dx%d tile", ErrDimensionMismatch, g.columns, g.rows)
	}
	n := g.columns
	h := newMatrix(n, n+1, false)
	v := newMatrix(n, n+1, false)

	switch dir {
	case Clockwise:
		for a := 0; a < n; a++ {
			for b := 0; b <= n; b++ {
				h[a][b] = g.vertical[n-1-a][b]
				v[a][b] = g.horizontal[a][n-b]
			}
		}
	case CounterClockwise:
		for a := 0; a < n; a++ {
			for b := 0; b <= n; b++ {
				h[a][b] = g.vertical[a][n-b]
				v[a][b] = g.horizontal[n-1-a][b]
			}
		}
	default:
		return WallGrid{}, fmt.Errorf("%w: %q", ErrInvalidRotation, dir)
	}

	return WallGrid{columns: n, rows: n, horizontal: h, vertical: v}, nil
}

// RotateCells turns a square [x][y] cell matrix a quarter turn. Clockwise
// sends cell (x,y) to (N-1-y, x). Elements are moved, never copied deeply.
func RotateCells[T any](cells [][]T, dir Rotation) ([][]T, error) {
	n := len(cells)
	for x := range cells {
		if len(cells[x]) != n {
			return nil, fmt.Errorf("%w: cell matrix is not square", ErrDimensionMismatch)
		}
	}

	out := make([][]T, n)
	for x := range out {
		out[x] = make([]T, n)
	}
	switch dir {
	case Clockwise:
		for x := 0; x < n; x++ {
			for y := 0; y < n; y++ {
				out[x][y] = cells[y][n-1-x]
			}
		}
	case CounterClockwise:
		for x := 0; x < n; x++ {
			for y := 0; y < n; y++ {
				out[x][y] = cells[n-1-y][x]
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRotation, dir)
	}
	return out, nil
}

// RotateActors turns an actor grid in lock-step with RotateWalls. The same
// *Actor values end up in the result.
func RotateActors(a ActorGrid, dir Rotation) (ActorGrid, error) {
	if a.columns != a.rows {
		return ActorGrid{}, fmt.Errorf("%w: cannot rotate %dx%d actor grid", ErrDimensionMismatch, a.columns, a.rows)
	}
	cells, err := RotateCells(a.cells, dir)
	if err != nil {
		return ActorGrid{}, err
	}
	return ActorGrid{columns: a.columns, rows: a.rows, cells: cells}, nil
}
