package tile

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/zyedidia/generic/mapset"

	"github.com/Ko-stant/gridmaze/internal/geometry"
)

// Config holds the non-visual options used when tiles are created.
type Config struct {
	Columns         int
	Rows            int
	WallProbability float64
	Image           string
	// Presets replaces the random layouts when set. Tile i gets
	// Presets[i % len(Presets)].
	Presets []geometry.WallGrid
}

func DefaultConfig() Config {
	return Config{
		Columns:         3,
		Rows:            3,
		WallProbability: 0.6,
		Image:           "crazycat.png",
	}
}

// Registry owns every tile of one session, keyed by surface.
type Registry struct {
	cfg      Config
	rng      *rand.Rand
	redrawer Redrawer

	mu          sync.RWMutex
	initialized bool
	tiles       map[SurfaceID]*Tile
	order       []SurfaceID
}

// NewRegistry returns an empty registry. rng supplies the initial wall
// layouts and is only used while Initialize runs.
func NewRegistry(cfg Config, rng *rand.Rand, redrawer Redrawer) *Registry {
	return &Registry{
		cfg:      cfg,
		rng:      rng,
		redrawer: redrawer,
		tiles:    make(map[SurfaceID]*Tile),
	}
}

// Initialize creates one randomized tile per surface and draws each one. It
// may succeed only once; later calls fail with ErrAlreadyInitialized and leave
// the existing tiles in place.
func (r *Registry) Initialize(surfaces []SurfaceID) error {
	if err := r.initialize(surfaces); err != nil {
		return err
	}
	for _, t := range r.Tiles() {
		t.Redraw()
	}
	return nil
}

func (r *Registry) initialize(surfaces []SurfaceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return ErrAlreadyInitialized
	}
	if len(surfaces) == 0 {
		return ErrNoSurfaces
	}

	seen := mapset.New[SurfaceID]()
	tiles := make(map[SurfaceID]*Tile, len(surfaces))
	for _, s := range surfaces {
		if s == "" {
			return ErrInvalidSurface
		}
		if seen.Has(s) {
			return fmt.Errorf("%w: %s", ErrDuplicateSurface, s)
		}
		seen.Put(s)

		walls, err := r.layout(len(tiles))
		if err != nil {
			return fmt.Errorf("tile %s: %w", s, err)
		}
		t, err := New(Params{Surface: s, Walls: walls, Image: r.cfg.Image, Redrawer: r.redrawer})
		if err != nil {
			return err
		}
		tiles[s] = t
	}

	r.tiles = tiles
	r.order = append([]SurfaceID(nil), surfaces...)
	r.initialized = true
	return nil
}

func (r *Registry) layout(i int) (geometry.WallGrid, error) {
	if len(r.cfg.Presets) == 0 {
		return geometry.NewRandomWallGrid(r.cfg.Columns, r.cfg.Rows, r.cfg.WallProbability, r.rng)
	}
	preset := r.cfg.Presets[i%len(r.cfg.Presets)]
	if preset.Columns() != r.cfg.Columns || preset.Rows() != r.cfg.Rows {
		return geometry.WallGrid{}, fmt.Errorf("%w: preset is %dx%d, tiles are %dx%d", geometry.ErrDimensionMismatch,
			preset.Columns(), preset.Rows(), r.cfg.Columns, r.cfg.Rows)
	}
	return preset.Clone(), nil
}

func (r *Registry) Initialized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized
}

// Lookup returns the tile bound to surface.
func (r *Registry) Lookup(surface SurfaceID) (*Tile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tiles[surface]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, surface)
	}
	return t, nil
}

// Tiles returns the tiles in the order their surfaces were registered.
func (r *Registry) Tiles() []*Tile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Tile, 0, len(r.order))
	for _, s := range r.order {
		out = append(out, r.tiles[s])
	}
	return out
}

func (r *Registry) Surfaces() []SurfaceID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]SurfaceID(nil), r.order...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
