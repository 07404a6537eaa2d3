package ws

import (
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/Ko-stant/gridmaze/internal/protocol"
)

type Logger interface {
	Printf(format string, v ...any)
}

// Sequence numbers patches per session, starting at 1.
type Sequence struct {
	counter atomic.Uint64
}

func (s *Sequence) Next() uint64 { return s.counter.Add(1) }

func (s *Sequence) Current() uint64 { return s.counter.Load() }

// Broadcaster wraps payloads in a PatchEnvelope and sends them to a hub.
type Broadcaster struct {
	hub      *Hub
	sequence *Sequence
	logger   Logger
}

func NewBroadcaster(hub *Hub, sequence *Sequence, logger Logger) *Broadcaster {
	if sequence == nil {
		sequence = &Sequence{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Broadcaster{hub: hub, sequence: sequence, logger: logger}
}

// Publish broadcasts one patch to every client of the hub.
func (b *Broadcaster) Publish(eventType string, payload any) {
	data, err := b.encode(eventType, payload)
	if err != nil {
		b.logger.Printf("failed to marshal %s: %v", eventType, err)
		return
	}
	b.hub.Broadcast(data)
}

// SendTo delivers one patch to a single client, used for the snapshot a new
// connection starts from.
func (b *Broadcaster) SendTo(conn Conn, eventType string, payload any) error {
	data, err := b.encode(eventType, payload)
	if err != nil {
		return err
	}
	return b.hub.Send(conn, data)
}

func (b *Broadcaster) encode(eventType string, payload any) ([]byte, error) {
	return json.Marshal(protocol.PatchEnvelope{
		Sequence: b.sequence.Next(),
		Type:     eventType,
		Payload:  payload,
	})
}
