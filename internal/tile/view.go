package tile

import "github.com/Ko-stant/gridmaze/internal/geometry"

// View is what a renderer needs to draw a tile. It is either a WallView or
// an ImageView; only the fields of the active variant are meaningful.
type View interface {
	view()
}

// WallView is the normal maze display.
type WallView struct {
	Walls    geometry.WallGrid
	Actors   geometry.ActorGrid
	Enclosed [][]bool
	Regions  geometry.RegionMap
	Sweeping bool
}

// ImageView replaces the maze with a single picture.
type ImageView struct {
	Image string
}

func (WallView) view()  {}
func (ImageView) view() {}

// Redrawer is notified every time a tile's committed state changes.
type Redrawer interface {
	Redraw(surface SurfaceID, v View)
}

type RedrawFunc func(surface SurfaceID, v View)

func (f RedrawFunc) Redraw(surface SurfaceID, v View) { f(surface, v) }

type nopRedrawer struct{}

func (nopRedrawer) Redraw(SurfaceID, View) {}
