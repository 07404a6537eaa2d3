package session

import (
	"errors"

	"github.com/Ko-stant/gridmaze/internal/geometry"
	"github.com/Ko-stant/gridmaze/internal/protocol"
	"github.com/Ko-stant/gridmaze/internal/sweep"
	"github.com/Ko-stant/gridmaze/internal/tile"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidMode     = errors.New("invalid mode")
	ErrSessionClosed   = errors.New("session closed")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrSessionNotFound, "SESSION_NOT_FOUND"},
	{ErrSessionClosed, "SESSION_CLOSED"},
	{ErrInvalidMode, "INVALID_MODE"},
	{protocol.ErrUnknownIntent, "UNKNOWN_INTENT"},
	{protocol.ErrMalformedIntent, "MALFORMED_INTENT"},
	{sweep.ErrSweepCancelled, "SWEEP_CANCELLED"},
	{tile.ErrAlreadyInitialized, "ALREADY_INITIALIZED"},
	{tile.ErrNoSurfaces, "NO_SURFACES"},
	{tile.ErrInvalidSurface, "INVALID_SURFACE"},
	{tile.ErrDuplicateSurface, "DUPLICATE_SURFACE"},
	{tile.ErrNotFound, "NOT_FOUND"},
	{tile.ErrNoWallNearby, "NO_WALL_NEARBY"},
	{tile.ErrSweepInProgress, "SWEEP_IN_PROGRESS"},
	{tile.ErrNoSweep, "NO_SWEEP"},
	{geometry.ErrOutOfRange, "OUT_OF_RANGE"},
	{geometry.ErrDimensionMismatch, "DIMENSION_MISMATCH"},
	{geometry.ErrInvalidDimensions, "INVALID_DIMENSIONS"},
	{geometry.ErrInvalidProbability, "INVALID_PROBABILITY"},
	{geometry.ErrInvalidOrientation, "INVALID_ORIENTATION"},
	{geometry.ErrInvalidRotation, "INVALID_ROTATION"},
	{geometry.ErrInvalidScale, "INVALID_SCALE"},
}

// ErrorCode maps err to the stable code sent to browsers. Unknown errors map
// to INTERNAL.
func ErrorCode(err error) string {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return "INTERNAL"
}
