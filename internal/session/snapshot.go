package session

import (
	"github.com/Ko-stant/gridmaze/internal/geometry"
	"github.com/Ko-stant/gridmaze/internal/protocol"
	"github.com/Ko-stant/gridmaze/internal/tile"
)

// TileSnapshotFromView converts a tile view to its wire form.
func TileSnapshotFromView(surface tile.SurfaceID, v tile.View) protocol.TileSnapshot {
	switch view := v.(type) {
	case tile.ImageView:
		return protocol.TileSnapshot{
			Surface: string(surface),
			Variant: protocol.VariantImage,
			Image:   view.Image,
		}
	case tile.WallView:
		var actors []protocol.ActorLite
		view.Actors.Each(func(x, y int, a *geometry.Actor) {
			actors = append(actors, protocol.ActorLite{X: x, Y: y, Image: a.Image, Scale: a.Scale})
		})
		return protocol.TileSnapshot{
			Surface:      string(surface),
			Variant:      protocol.VariantWalls,
			Columns:      view.Walls.Columns(),
			Rows:         view.Walls.Rows(),
			Horizontal:   view.Walls.Horizontal(),
			Vertical:     view.Walls.Vertical(),
			Enclosed:     view.Enclosed,
			Actors:       actors,
			RegionIDs:    view.Regions.CellRegionIDs,
			RegionsCount: view.Regions.RegionsCount,
			Sweeping:     view.Sweeping,
		}
	}
	return protocol.TileSnapshot{Surface: string(surface)}
}
