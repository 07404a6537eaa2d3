package geometry

import (
	"encoding/json"
	"fmt"
	"os"
)

// TileWalls is one stored wall layout, matrices in storage order.
type TileWalls struct {
	Horizontal [][]bool `json:"horizontal"`
	Vertical   [][]bool `json:"vertical"`
}

// BoardDefinition is a set of fixed tile layouts used instead of random
// walls.
type BoardDefinition struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Dimensions struct {
		Columns int `json:"columns"`
		Rows    int `json:"rows"`
	} `json:"dimensions"`
	Tiles []TileWalls `json:"tiles"`
}

// LoadBoardFromFile loads a board definition from a JSON file
func LoadBoardFromFile(filepath string) (*BoardDefinition, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}

	var board BoardDefinition
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("failed to parse board JSON: %w", err)
	}

	return &board, nil
}

// WallGrids validates every stored layout against the board dimensions.
func (b *BoardDefinition) WallGrids() ([]WallGrid, error) {
	if len(b.Tiles) == 0 {
		return nil, fmt.Errorf("board %q: %w: no tiles", b.ID, ErrInvalidDimensions)
	}
	grids := make([]WallGrid, 0, len(b.Tiles))
	for i, t := range b.Tiles {
		g, err := WallGridFromMatrices(t.Horizontal, t.Vertical)
		if err != nil {
			return nil, fmt.Errorf("board %q tile %d: %w", b.ID, i, err)
		}
		if g.Columns() != b.Dimensions.Columns || g.Rows() != b.Dimensions.Rows {
			return nil, fmt.Errorf("board %q tile %d: %w: %dx%d, want %dx%d", b.ID, i, ErrDimensionMismatch,
				g.Columns(), g.Rows(), b.Dimensions.Columns, b.Dimensions.Rows)
		}
		grids = append(grids, g)
	}
	return grids, nil
}

// BoardFromGrids stores grids as a board, for saving an edited layout.
func BoardFromGrids(id, name string, grids []WallGrid) (*BoardDefinition, error) {
	if len(grids) == 0 {
		return nil, fmt.Errorf("%w: no tiles", ErrInvalidDimensions)
	}
	b := &BoardDefinition{ID: id, Name: name}
	b.Dimensions.Columns, b.Dimensions.Rows = grids[0].Columns(), grids[0].Rows()
	for i, g := range grids {
		if !g.SameShape(grids[0]) {
			return nil, fmt.Errorf("tile %d: %w", i, ErrDimensionMismatch)
		}
		b.Tiles = append(b.Tiles, TileWalls{Horizontal: g.Horizontal(), Vertical: g.Vertical()})
	}
	return b, nil
}
