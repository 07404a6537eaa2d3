package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ko-stant/gridmaze/internal/geometry"
	"github.com/Ko-stant/gridmaze/internal/protocol"
	"github.com/Ko-stant/gridmaze/internal/sweep"
	"github.com/Ko-stant/gridmaze/internal/tile"
)

// Mode selects which controls the page offers. The server accepts every
// intent in every mode.
type Mode string

const (
	ModeTest   Mode = "test"
	ModeEditor Mode = "editor"
	ModeGame   Mode = "game"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeTest, ModeEditor, ModeGame:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Options configures every session a Manager creates.
type Options struct {
	Mode Mode
	// Tiles is the number of canvases per session.
	Tiles         int
	Tile          tile.Config
	CellSize      int
	SweepSteps    int
	SweepInterval time.Duration
	// Seed fixes the wall layout. Zero picks a new seed per session.
	Seed    int64
	Palette protocol.Palette
}

func DefaultPalette() protocol.Palette {
	return protocol.Palette{
		Background:  "rgb(255,255,255)",
		Floor:       "rgb(235,235,235)",
		Wall:        "rgb(0,0,0)",
		Missing:     "rgb(200,200,200)",
		Unreachable: "rgb(75,100,230)",
	}
}

func DefaultOptions() Options {
	return Options{
		Mode:          ModeTest,
		Tiles:         4,
		Tile:          tile.DefaultConfig(),
		CellSize:      100,
		SweepSteps:    sweep.DefaultSteps,
		SweepInterval: sweep.DefaultInterval,
		Palette:       DefaultPalette(),
	}
}

// Layout is the hit-test layout shared by every tile of a session.
func (o Options) Layout() geometry.Layout {
	return geometry.Layout{Columns: o.Tile.Columns, Rows: o.Tile.Rows, CellSize: o.CellSize}
}

func (o Options) Validate() error {
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if o.Tiles <= 0 {
		return fmt.Errorf("%w: %d tiles", tile.ErrNoSurfaces, o.Tiles)
	}
	return o.Layout().Validate()
}

// surfaceIDs names the canvases tile-0 .. tile-(n-1).
func surfaceIDs(n int) []tile.SurfaceID {
	ids := make([]tile.SurfaceID, n)
	for i := range ids {
		ids[i] = tile.SurfaceID(fmt.Sprintf("tile-%d", i))
	}
	return ids
}
