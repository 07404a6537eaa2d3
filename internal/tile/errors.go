package tile

import "errors"

var (
	ErrAlreadyInitialized = errors.New("registry is already initialized")
	ErrNoSurfaces         = errors.New("at least one surface is required")
	ErrInvalidSurface     = errors.New("surface id must not be empty")
	ErrDuplicateSurface   = errors.New("surface listed more than once")
	ErrNotFound           = errors.New("no tile for surface")
	ErrNoWallNearby       = errors.New("no wall near point")
	ErrSweepInProgress    = errors.New("tile is already rotating")
	ErrNoSweep            = errors.New("tile is not rotating")
)
