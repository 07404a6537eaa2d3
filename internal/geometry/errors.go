package geometry

import "errors"

var (
	ErrOutOfRange         = errors.New("index out of range")
	ErrDimensionMismatch  = errors.New("dimension mismatch")
	ErrInvalidDimensions  = errors.New("invalid grid dimensions")
	ErrInvalidProbability = errors.New("probability must be within [0, 1]")
	ErrInvalidOrientation = errors.New("invalid wall orientation")
	ErrInvalidRotation    = errors.New("invalid rotation direction")
	ErrInvalidScale       = errors.New("actor scale must be within (0, 1]")
)
