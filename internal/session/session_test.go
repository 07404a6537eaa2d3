package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ko-stant/gridmaze/internal/geometry"
	"github.com/Ko-stant/gridmaze/internal/protocol"
	"github.com/Ko-stant/gridmaze/internal/sweep"
	"github.com/Ko-stant/gridmaze/internal/tile"
)

type published struct {
	eventType string
	payload   any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{eventType, payload})
}

func (p *recordingPublisher) ofType(eventType string) []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []any
	for _, e := range p.events {
		if e.eventType == eventType {
			out = append(out, e.payload)
		}
	}
	return out
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

type quietLogger struct{}

func (quietLogger) Printf(string, ...any) {}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Seed = 42
	opts.SweepSteps = 3
	opts.SweepInterval = 5 * time.Millisecond
	return opts
}

func newTestSession(t *testing.T, opts Options) (*Session, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	s, err := New(uuid.New(), opts, pub, quietLogger{})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, pub
}

func TestNew_DrawsEveryTile(t *testing.T) {
	s, pub := newTestSession(t, testOptions())

	redrawn := pub.ofType(protocol.EventTileRedrawn)
	require.Len(t, redrawn, 4)
	for i, p := range redrawn {
		snap := p.(protocol.TileRedrawn).Tile
		assert.Equal(t, fmt.Sprintf("tile-%d", i), snap.Surface)
		assert.Equal(t, protocol.VariantWalls, snap.Variant)
		assert.Len(t, snap.Horizontal, 3)
		assert.Len(t, snap.Vertical, 3)
	}
	assert.Equal(t, tile.SurfaceID("tile-0"), s.Active())

	snap := s.Snapshot()
	assert.Equal(t, s.ID().String(), snap.SessionID)
	assert.Equal(t, "test", snap.Mode)
	assert.Len(t, snap.Tiles, 4)
	assert.Equal(t, protocol.LayoutLite{Columns: 3, Rows: 3, CellSize: 100}, snap.Layout)
	assert.Equal(t, protocol.ProtocolVersion, snap.ProtocolVersion)
	assert.Equal(t, int64(5), snap.Sweep.IntervalMS)
}

func TestNew_RejectsBadOptions(t *testing.T) {
	opts := testOptions()
	opts.Mode = "arcade"
	_, err := New(uuid.New(), opts, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidMode)

	opts = testOptions()
	opts.Tiles = 0
	_, err = New(uuid.New(), opts, nil, nil)
	assert.ErrorIs(t, err, tile.ErrNoSurfaces)

	opts = testOptions()
	opts.Tile.WallProbability = 1.5
	_, err = New(uuid.New(), opts, nil, nil)
	assert.ErrorIs(t, err, geometry.ErrInvalidProbability)
}

func TestNew_SeedReproducesLayout(t *testing.T) {
	a, _ := newTestSession(t, testOptions())
	b, _ := newTestSession(t, testOptions())
	assert.Equal(t, a.Snapshot().Tiles, b.Snapshot().Tiles)
}

func TestNew_GameModePlacesActors(t *testing.T) {
	opts := testOptions()
	opts.Mode = ModeGame
	s, _ := newTestSession(t, opts)

	first, err := s.TileSnapshot("tile-0")
	require.NoError(t, err)
	assert.Equal(t, []protocol.ActorLite{{X: 0, Y: 0, Image: wizardImage, Scale: 1.0}}, first.Actors)

	last, err := s.TileSnapshot("tile-3")
	require.NoError(t, err)
	assert.Equal(t, []protocol.ActorLite{{X: 2, Y: 2, Image: exitImage, Scale: 0.8}}, last.Actors)

	middle, err := s.TileSnapshot("tile-1")
	require.NoError(t, err)
	assert.Empty(t, middle.Actors)
}

func TestNew_GameModeSingleTileHoldsBothActors(t *testing.T) {
	opts := testOptions()
	opts.Mode = ModeGame
	opts.Tiles = 1
	s, _ := newTestSession(t, opts)

	snap, err := s.TileSnapshot("tile-0")
	require.NoError(t, err)
	assert.Len(t, snap.Actors, 2)
}

func TestSession_FocusRedirectsSurfacelessCalls(t *testing.T) {
	s, pub := newTestSession(t, testOptions())

	assert.ErrorIs(t, s.Focus("tile-9"), tile.ErrNotFound)
	require.NoError(t, s.Focus("tile-2"))
	assert.Equal(t, tile.SurfaceID("tile-2"), s.Active())
	assert.Equal(t, []any{protocol.TileFocused{Surface: "tile-2"}}, pub.ofType(protocol.EventTileFocused))

	before, err := s.TileSnapshot("tile-2")
	require.NoError(t, err)
	pub.reset()
	require.NoError(t, s.Rotate("", geometry.Clockwise))

	redrawn := pub.ofType(protocol.EventTileRedrawn)
	require.Len(t, redrawn, 1)
	assert.Equal(t, "tile-2", redrawn[0].(protocol.TileRedrawn).Tile.Surface)

	after, err := s.TileSnapshot("")
	require.NoError(t, err)
	assert.Equal(t, "tile-2", after.Surface)

	walls, err := geometry.WallGridFromMatrices(before.Horizontal, before.Vertical)
	require.NoError(t, err)
	want, err := geometry.RotateWalls(walls, geometry.Clockwise)
	require.NoError(t, err)
	assert.Equal(t, want.Vertical(), after.Vertical)
}

func TestSession_ToggleWallAt(t *testing.T) {
	s, pub := newTestSession(t, testOptions())
	before, err := s.TileSnapshot("tile-1")
	require.NoError(t, err)

	addr, present, err := s.ToggleWallAt("tile-1", 150, 98)
	require.NoError(t, err)
	assert.Equal(t, geometry.WallAddress{Orientation: geometry.Horizontal, A: 1, B: 1}, addr)
	assert.Equal(t, !before.Horizontal[1][1], present)

	toggled := pub.ofType(protocol.EventWallToggled)
	require.Len(t, toggled, 1)
	assert.Equal(t, protocol.WallToggled{Surface: "tile-1", Orientation: "horizontal", A: 1, B: 1, Present: present}, toggled[0])

	_, _, err = s.ToggleWallAt("tile-1", 150, 150)
	assert.ErrorIs(t, err, tile.ErrNoWallNearby)
	_, _, err = s.ToggleWallAt("nope", 150, 98)
	assert.ErrorIs(t, err, tile.ErrNotFound)
}

func TestSession_SweepPublishesFramesThenCommits(t *testing.T) {
	s, pub := newTestSession(t, testOptions())
	before, err := s.TileSnapshot("tile-0")
	require.NoError(t, err)
	pub.reset()

	sw, err := s.StartSweep("tile-0", geometry.CounterClockwise)
	require.NoError(t, err)
	_, err = s.StartSweep("tile-0", geometry.Clockwise)
	assert.ErrorIs(t, err, tile.ErrSweepInProgress)
	require.NoError(t, sw.Wait())

	redrawn := pub.ofType(protocol.EventTileRedrawn)
	require.Len(t, redrawn, 2)
	assert.True(t, redrawn[0].(protocol.TileRedrawn).Tile.Sweeping)
	assert.False(t, redrawn[1].(protocol.TileRedrawn).Tile.Sweeping)

	frames := pub.ofType(protocol.EventSweepFrame)
	require.Len(t, frames, 2)
	assert.Equal(t, "counterclockwise", frames[0].(protocol.SweepFrame).Direction)
	assert.InDelta(t, -30.0, frames[0].(protocol.SweepFrame).Angle, 1e-9)

	after, err := s.TileSnapshot("tile-0")
	require.NoError(t, err)
	walls, err := geometry.WallGridFromMatrices(before.Horizontal, before.Vertical)
	require.NoError(t, err)
	want, err := geometry.RotateWalls(walls, geometry.CounterClockwise)
	require.NoError(t, err)
	assert.Equal(t, want.Horizontal(), after.Horizontal)
	assert.Equal(t, want.Vertical(), after.Vertical)
}

func TestSession_CancelSweep(t *testing.T) {
	opts := testOptions()
	opts.SweepInterval = time.Second
	s, pub := newTestSession(t, opts)
	before, err := s.TileSnapshot("tile-3")
	require.NoError(t, err)

	assert.ErrorIs(t, s.CancelSweep("tile-3"), tile.ErrNoSweep)

	sw, err := s.StartSweep("tile-3", geometry.Clockwise)
	require.NoError(t, err)
	require.NoError(t, s.CancelSweep("tile-3"))
	assert.ErrorIs(t, sw.Wait(), sweep.ErrSweepCancelled)

	assert.Eventually(t, func() bool {
		return len(pub.ofType(protocol.EventSweepCancelled)) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, protocol.SweepCancelled{Surface: "tile-3", Direction: "clockwise"}, pub.ofType(protocol.EventSweepCancelled)[0])

	after, err := s.TileSnapshot("tile-3")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSession_Gesture(t *testing.T) {
	s, _ := newTestSession(t, testOptions())

	ok, err := s.Gesture("tile-0", "N")
	require.NoError(t, err)
	assert.False(t, ok)

	for _, g := range []string{"W", "SW", "E", "NE"} {
		ok, err := s.Gesture("tile-0", g)
		require.NoError(t, err, g)
		assert.True(t, ok, g)
		require.Eventually(t, func() bool {
			snap, err := s.TileSnapshot("tile-0")
			return err == nil && !snap.Sweeping
		}, time.Second, time.Millisecond)
		assert.Eventually(t, func() bool {
			s.mu.Lock()
			defer s.mu.Unlock()
			return len(s.sweeps) == 0
		}, time.Second, time.Millisecond)
	}
}

func TestSession_ToggleImageMode(t *testing.T) {
	s, pub := newTestSession(t, testOptions())
	pub.reset()

	on, err := s.ToggleImageMode("tile-1")
	require.NoError(t, err)
	assert.True(t, on)

	redrawn := pub.ofType(protocol.EventTileRedrawn)
	require.Len(t, redrawn, 1)
	assert.Equal(t, protocol.TileSnapshot{Surface: "tile-1", Variant: protocol.VariantImage, Image: "crazycat.png"},
		redrawn[0].(protocol.TileRedrawn).Tile)
}

func TestSession_CloseAbortsSweeps(t *testing.T) {
	opts := testOptions()
	opts.SweepInterval = time.Second
	pub := &recordingPublisher{}
	s, err := New(uuid.New(), opts, pub, quietLogger{})
	require.NoError(t, err)

	sw, err := s.StartSweep("tile-0", geometry.Clockwise)
	require.NoError(t, err)
	s.Close()

	select {
	case <-sw.Done():
	default:
		t.Fatal("sweep still running after Close")
	}
	assert.Len(t, pub.ofType(protocol.EventSweepCancelled), 1)

	assert.ErrorIs(t, s.Rotate("tile-0", geometry.Clockwise), ErrSessionClosed)
	_, err = s.StartSweep("tile-0", geometry.Clockwise)
	assert.ErrorIs(t, err, ErrSessionClosed)
	s.Close()
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrapped: %w", geometry.ErrOutOfRange), "OUT_OF_RANGE"},
		{geometry.ErrDimensionMismatch, "DIMENSION_MISMATCH"},
		{tile.ErrAlreadyInitialized, "ALREADY_INITIALIZED"},
		{tile.ErrNoSurfaces, "NO_SURFACES"},
		{fmt.Errorf("x: %w", tile.ErrNotFound), "NOT_FOUND"},
		{tile.ErrSweepInProgress, "SWEEP_IN_PROGRESS"},
		{ErrSessionNotFound, "SESSION_NOT_FOUND"},
		{fmt.Errorf("%w: %w", sweep.ErrSweepCancelled, fmt.Errorf("ctx")), "SWEEP_CANCELLED"},
		{fmt.Errorf("boom"), "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Editor ")
	require.NoError(t, err)
	assert.Equal(t, ModeEditor, m)

	_, err = ParseMode("")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
