package protocol

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	EventID  int64  `json:"eventId"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// Patch types sent from server to browser.
const (
	EventSessionSnapshot = "SessionSnapshot"
	EventTileRedrawn     = "TileRedrawn"
	EventWallToggled     = "WallToggled"
	EventSweepFrame      = "SweepFrame"
	EventSweepCancelled  = "SweepCancelled"
	EventTileFocused     = "TileFocused"
	EventErrorRaised     = "ErrorRaised"
)

type TileRedrawn struct {
	Tile TileSnapshot `json:"tile"`
}

type WallToggled struct {
	Surface     string `json:"surface"`
	Orientation string `json:"orientation"`
	A           int    `json:"a"`
	B           int    `json:"b"`
	Present     bool   `json:"present"`
}

// SweepFrame asks the browser to draw a tile turned by Angle degrees around
// its centre. The committed orientation arrives later as a TileRedrawn.
type SweepFrame struct {
	Surface   string  `json:"surface"`
	Step      int     `json:"step"`
	Steps     int     `json:"steps"`
	Direction string  `json:"direction"`
	Angle     float64 `json:"angle"`
}

type SweepCancelled struct {
	Surface   string `json:"surface"`
	Direction string `json:"direction"`
}

type TileFocused struct {
	Surface string `json:"surface"`
}

type ErrorRaised struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Intent  string `json:"intent,omitempty"`
}
