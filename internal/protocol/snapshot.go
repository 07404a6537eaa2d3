package protocol

const ProtocolVersion = "gridmaze/1"

const (
	VariantWalls = "walls"
	VariantImage = "image"
)

type LayoutLite struct {
	Columns  int `json:"columns"`
	Rows     int `json:"rows"`
	CellSize int `json:"cellSize"`
}

type ActorLite struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Image string  `json:"image"`
	Scale float64 `json:"scale"`
}

// TileSnapshot is everything the browser needs to draw one canvas. Horizontal
// and Vertical keep the server's storage order: horizontal[x][y] and
// vertical[y][x]. Enclosed is indexed [x][y]. In the image variant only
// Surface, Variant and Image are set.
type TileSnapshot struct {
	Surface      string      `json:"surface"`
	Variant      string      `json:"variant"`
	Columns      int         `json:"columns,omitempty"`
	Rows         int         `json:"rows,omitempty"`
	Horizontal   [][]bool    `json:"horizontal,omitempty"`
	Vertical     [][]bool    `json:"vertical,omitempty"`
	Enclosed     [][]bool    `json:"enclosed,omitempty"`
	Actors       []ActorLite `json:"actors,omitempty"`
	RegionIDs    []int       `json:"regionIds,omitempty"`
	RegionsCount int         `json:"regionsCount,omitempty"`
	Sweeping     bool        `json:"sweeping,omitempty"`
	Image        string      `json:"image,omitempty"`
}

type Palette struct {
	Background  string `json:"background"`
	Floor       string `json:"floor"`
	Wall        string `json:"wall"`
	Missing     string `json:"missing"`
	Unreachable string `json:"unreachable"`
}

type SessionSnapshot struct {
	SessionID       string         `json:"sessionId"`
	Mode            string         `json:"mode"`
	Layout          LayoutLite     `json:"layout"`
	ActiveSurface   string         `json:"activeSurface"`
	Tiles           []TileSnapshot `json:"tiles"`
	Palette         Palette        `json:"palette"`
	Sweep           SweepLite      `json:"sweep"`
	ProtocolVersion string         `json:"protocolVersion"`
}

type SweepLite struct {
	Steps      int   `json:"steps"`
	IntervalMS int64 `json:"intervalMs"`
}
