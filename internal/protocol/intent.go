package protocol

import "encoding/json"

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Intent types sent from browser to server.
const (
	IntentToggleWall      = "RequestToggleWall"
	IntentRotate          = "RequestRotate"
	IntentGesture         = "RequestGesture"
	IntentCancelSweep     = "RequestCancelSweep"
	IntentToggleImageMode = "RequestToggleImageMode"
	IntentFocusTile       = "RequestFocusTile"
)

// RequestToggleWall carries a click position in canvas pixels.
type RequestToggleWall struct {
	Surface string `json:"surface"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// RequestRotate rotates Surface, or the focused tile when Surface is empty.
// Animate selects a sweep instead of an immediate turn.
type RequestRotate struct {
	Surface   string `json:"surface,omitempty"`
	Direction string `json:"direction"`
	Animate   bool   `json:"animate,omitempty"`
}

// RequestGesture is a swipe direction such as "W", "SW", "E" or "NE".
type RequestGesture struct {
	Surface   string `json:"surface,omitempty"`
	Direction string `json:"direction"`
}

type RequestCancelSweep struct {
	Surface string `json:"surface,omitempty"`
}

type RequestToggleImageMode struct {
	Surface string `json:"surface,omitempty"`
}

type RequestFocusTile struct {
	Surface string `json:"surface"`
}
