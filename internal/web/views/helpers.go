package views

import (
	"strconv"

	"github.com/Ko-stant/gridmaze/internal/protocol"
)

// Margin is the padding drawn around the grid so the outer walls can be hit.
func Margin(l protocol.LayoutLite) int { return l.CellSize / 4 }

func canvasWidth(l protocol.LayoutLite) string {
	return strconv.Itoa(l.Columns*l.CellSize + 2*Margin(l))
}

func canvasHeight(l protocol.LayoutLite) string {
	return strconv.Itoa(l.Rows*l.CellSize + 2*Margin(l))
}
