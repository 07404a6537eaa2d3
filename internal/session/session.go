// Package session holds one browser's set of tiles and turns intents into
// tile operations, publishing every visible change as a patch.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ko-stant/gridmaze/internal/geometry"
	"github.com/Ko-stant/gridmaze/internal/protocol"
	"github.com/Ko-stant/gridmaze/internal/sweep"
	"github.com/Ko-stant/gridmaze/internal/tile"
)

type Logger interface {
	Printf(format string, v ...any)
}

// Publisher delivers patches to whoever watches the session.
type Publisher interface {
	Publish(eventType string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

const (
	wizardImage = "wizard-128x128.png"
	exitImage   = "exit.png"
)

type Session struct {
	id        uuid.UUID
	opts      Options
	layout    geometry.Layout
	registry  *tile.Registry
	publisher Publisher
	logger    Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	active tile.SurfaceID
	sweeps map[tile.SurfaceID]*sweep.Sweep
	closed bool
}

// New creates a session and its tiles. Every tile is drawn once through
// publisher before New returns.
func New(id uuid.UUID, opts Options, publisher Publisher, logger Logger) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if logger == nil {
		logger = log.Default()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:        id,
		opts:      opts,
		layout:    opts.Layout(),
		publisher: publisher,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		sweeps:    make(map[tile.SurfaceID]*sweep.Sweep),
	}
	s.registry = tile.NewRegistry(opts.Tile, rand.New(rand.NewSource(seed)), s)

	surfaces := surfaceIDs(opts.Tiles)
	if err := s.registry.Initialize(surfaces); err != nil {
		cancel()
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	s.active = surfaces[0]

	if opts.Mode == ModeGame {
		if err := s.placeGameActors(); err != nil {
			cancel()
			return nil, fmt.Errorf("session %s: %w", id, err)
		}
	}
	s.logger.Printf("session %s created: mode=%s tiles=%d seed=%d", id, opts.Mode, opts.Tiles, seed)
	return s, nil
}

// placeGameActors puts the wizard in the first cell of the first tile and the
// exit in the last cell of the last tile.
func (s *Session) placeGameActors() error {
	wizard, err := geometry.NewActor(wizardImage, 1.0)
	if err != nil {
		return err
	}
	exit, err := geometry.NewActor(exitImage, 0.8)
	if err != nil {
		return err
	}

	tiles := s.registry.Tiles()
	first, last := tiles[0], tiles[len(tiles)-1]

	actors := first.Actors()
	if err := actors.Place(0, 0, wizard); err != nil {
		return err
	}
	if first != last {
		if err := first.UpdateActors(actors); err != nil {
			return err
		}
		actors = last.Actors()
	}
	if err := actors.Place(actors.Columns()-1, actors.Rows()-1, exit); err != nil {
		return err
	}
	return last.UpdateActors(actors)
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Mode() Mode { return s.opts.Mode }

func (s *Session) Layout() geometry.Layout { return s.layout }

func (s *Session) Surfaces() []tile.SurfaceID { return s.registry.Surfaces() }

// Redraw publishes a tile's new view. It is the registry's redrawer.
func (s *Session) Redraw(surface tile.SurfaceID, v tile.View) {
	s.publisher.Publish(protocol.EventTileRedrawn, protocol.TileRedrawn{Tile: TileSnapshotFromView(surface, v)})
}

func (s *Session) Active() tile.SurfaceID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// lookup resolves surface, falling back to the focused tile when it is empty.
func (s *Session) lookup(surface tile.SurfaceID) (*tile.Tile, error) {
	s.mu.Lock()
	closed := s.closed
	if surface == "" {
		surface = s.active
	}
	s.mu.Unlock()
	if closed {
		return nil, ErrSessionClosed
	}
	return s.registry.Lookup(surface)
}

// Focus makes surface the tile that surface-less intents act on.
func (s *Session) Focus(surface tile.SurfaceID) error {
	if _, err := s.registry.Lookup(surface); err != nil {
		return err
	}
	s.mu.Lock()
	s.active = surface
	s.mu.Unlock()
	s.publisher.Publish(protocol.EventTileFocused, protocol.TileFocused{Surface: string(surface)})
	return nil
}

func (s *Session) Snapshot() protocol.SessionSnapshot {
	tiles := s.registry.Tiles()
	snaps := make([]protocol.TileSnapshot, 0, len(tiles))
	for _, t := range tiles {
		snaps = append(snaps, TileSnapshotFromView(t.Surface(), t.View()))
	}
	return protocol.SessionSnapshot{
		SessionID:     s.id.String(),
		Mode:          string(s.opts.Mode),
		Layout:        protocol.LayoutLite{Columns: s.layout.Columns, Rows: s.layout.Rows, CellSize: s.layout.CellSize},
		ActiveSurface: string(s.Active()),
		Tiles:         snaps,
		Palette:       s.opts.Palette,
		Sweep: protocol.SweepLite{
			Steps:      s.opts.SweepSteps,
			IntervalMS: s.opts.SweepInterval.Milliseconds(),
		},
		ProtocolVersion: protocol.ProtocolVersion,
	}
}

func (s *Session) TileSnapshot(surface tile.SurfaceID) (protocol.TileSnapshot, error) {
	t, err := s.lookup(surface)
	if err != nil {
		return protocol.TileSnapshot{}, err
	}
	return TileSnapshotFromView(t.Surface(), t.View()), nil
}

// Board exports the current walls of every tile, for loading back later
// through a board file.
func (s *Session) Board() (*geometry.BoardDefinition, error) {
	tiles := s.registry.Tiles()
	grids := make([]geometry.WallGrid, 0, len(tiles))
	for _, t := range tiles {
		grids = append(grids, t.Walls())
	}
	return geometry.BoardFromGrids(s.id.String(), "GridMaze session "+s.id.String(), grids)
}

// ToggleWallAt flips the wall under pixel (x,y) of surface.
func (s *Session) ToggleWallAt(surface tile.SurfaceID, x, y int) (geometry.WallAddress, bool, error) {
	t, err := s.lookup(surface)
	if err != nil {
		return geometry.WallAddress{}, false, err
	}
	addr, present, err := t.ToggleWallAt(s.layout, x, y)
	if err != nil {
		return addr, false, err
	}
	s.logger.Printf("session %s: %s wall %s -> %t", s.id, t.Surface(), addr, present)
	s.publisher.Publish(protocol.EventWallToggled, protocol.WallToggled{
		Surface:     string(t.Surface()),
		Orientation: string(addr.Orientation),
		A:           addr.A,
		B:           addr.B,
		Present:     present,
	})
	return addr, present, nil
}

// Rotate turns surface a quarter turn at once.
func (s *Session) Rotate(surface tile.SurfaceID, dir geometry.Rotation) error {
	t, err := s.lookup(surface)
	if err != nil {
		return err
	}
	if err := t.Rotate(dir); err != nil {
		return err
	}
	s.logger.Printf("session %s: %s rotated %s\n%s", s.id, t.Surface(), dir, t.Walls())
	return nil
}

// StartSweep animates a quarter turn of surface. Frames are published as
// SweepFrame patches, the committed state as TileRedrawn.
func (s *Session) StartSweep(surface tile.SurfaceID, dir geometry.Rotation) (*sweep.Sweep, error) {
	t, err := s.lookup(surface)
	if err != nil {
		return nil, err
	}
	id := t.Surface()

	a := sweep.Animator{
		Steps:    s.opts.SweepSteps,
		Interval: s.opts.SweepInterval,
		Logger:   s.logger,
		OnFrame: func(f sweep.Frame) {
			s.publisher.Publish(protocol.EventSweepFrame, protocol.SweepFrame{
				Surface:   string(id),
				Step:      f.Step,
				Steps:     f.Steps,
				Direction: string(f.Direction),
				Angle:     f.Angle,
			})
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	sw, err := a.Start(s.ctx, t, dir)
	if err != nil {
		return nil, err
	}
	s.sweeps[id] = sw

	s.wg.Add(1)
	go s.awaitSweep(id, sw)
	return sw, nil
}

func (s *Session) awaitSweep(id tile.SurfaceID, sw *sweep.Sweep) {
	defer s.wg.Done()
	err := sw.Wait()

	s.mu.Lock()
	if s.sweeps[id] == sw {
		delete(s.sweeps, id)
	}
	s.mu.Unlock()

	switch {
	case err == nil:
	case errors.Is(err, sweep.ErrSweepCancelled):
		s.publisher.Publish(protocol.EventSweepCancelled, protocol.SweepCancelled{
			Surface:   string(id),
			Direction: string(sw.Direction),
		})
	default:
		s.logger.Printf("session %s: sweep on %s failed: %v", s.id, id, err)
		s.publisher.Publish(protocol.EventErrorRaised, protocol.ErrorRaised{Code: ErrorCode(err), Message: err.Error()})
	}
}

// CancelSweep stops the animation running on surface. The tile keeps its
// pre-sweep orientation.
func (s *Session) CancelSweep(surface tile.SurfaceID) error {
	t, err := s.lookup(surface)
	if err != nil {
		return err
	}
	s.mu.Lock()
	sw, ok := s.sweeps[t.Surface()]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", t.Surface(), tile.ErrNoSweep)
	}
	sw.Cancel()
	return nil
}

// Gesture maps a swipe to an animated rotation. Swipes towards the west turn
// the tile counter-clockwise, towards the east clockwise. Other directions
// are ignored and report false.
func (s *Session) Gesture(surface tile.SurfaceID, direction string) (bool, error) {
	var dir geometry.Rotation
	switch direction {
	case "W", "SW":
		dir = geometry.CounterClockwise
	case "E", "NE":
		dir = geometry.Clockwise
	default:
		return false, nil
	}
	if _, err := s.StartSweep(surface, dir); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleImageMode swaps surface between the maze and the image display.
func (s *Session) ToggleImageMode(surface tile.SurfaceID) (bool, error) {
	t, err := s.lookup(surface)
	if err != nil {
		return false, err
	}
	return t.ToggleImageMode(), nil
}

// Close cancels running sweeps and waits for them to release their tiles.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	s.logger.Printf("session %s closed", s.id)
}
