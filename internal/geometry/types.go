package geometry

import (
	"fmt"
	"strings"
)

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// WallAddress names one wall segment of a tile.
//
// For Horizontal walls A is the cell column and B the grid line counted from
// the top. For Vertical walls A is the cell row and B the grid line counted
// from the left. This mirrors the storage order of WallGrid.
type WallAddress struct {
	Orientation Orientation `json:"orientation"`
	A           int         `json:"a"`
	B           int         `json:"b"`
}

func (w WallAddress) String() string {
	return fmt.Sprintf("%s[%d][%d]", w.Orientation, w.A, w.B)
}

type Rotation string

const (
	Clockwise        Rotation = "clockwise"
	CounterClockwise Rotation = "counterclockwise"
)

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	if r == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

// ParseRotation accepts the names used by the browser buttons as well as the
// canonical values.
func ParseRotation(s string) (Rotation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clockwise", "cw", "right":
		return Clockwise, nil
	case "counterclockwise", "counter-clockwise", "ccw", "left":
		return CounterClockwise, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRotation, s)
}
