package geometry

// RegionMap labels every cell of a tile with the id of the group of cells
// reachable from it without crossing a wall.
type RegionMap struct {
	Columns       int   `json:"columns"`
	CellRegionIDs []int `json:"cellRegionIds"` // row-major, y*Columns + x
	RegionsCount  int   `json:"regionsCount"`
}

// RegionAt returns the region of cell (x,y), or -1 outside the map.
func (rm RegionMap) RegionAt(x, y int) int {
	if rm.Columns == 0 || x < 0 || x >= rm.Columns || y < 0 {
		return -1
	}
	idx := y*rm.Columns + x
	if idx >= len(rm.CellRegionIDs) {
		return -1
	}
	return rm.CellRegionIDs[idx]
}

// BuildRegionMap flood fills the tile, visiting cells in row-major order so
// region ids are stable for a given layout.
func BuildRegionMap(g WallGrid) RegionMap {
	w, h := g.columns, g.rows
	ids := make([]int, w*h)
	for i := range ids {
		ids[i] = -1
	}

	regionID := 0
	queue := make([][2]int, 0, w*h)
	visit := func(x, y int) {
		idx := y*w + x
		if ids[idx] != -1 {
			return
		}
		ids[idx] = regionID
		queue = append(queue, [2]int{x, y})
	}

	for y := range h {
		for x := range w {
			if ids[y*w+x] != -1 {
				continue
			}
			queue = queue[:0]
			visit(x, y)

			for len(queue) > 0 {
				cx, cy := queue[0][0], queue[0][1]
				queue = queue[1:]

				if cx > 0 && !g.vertical[cy][cx] {
					visit(cx-1, cy)
				}
				if cx < w-1 && !g.vertical[cy][cx+1] {
					visit(cx+1, cy)
				}
				if cy > 0 && !g.horizontal[cx][cy] {
					visit(cx, cy-1)
				}
				if cy < h-1 && !g.horizontal[cx][cy+1] {
					visit(cx, cy+1)
				}
			}
			regionID++
		}
	}

	return RegionMap{Columns: w, CellRegionIDs: ids, RegionsCount: regionID}
}
