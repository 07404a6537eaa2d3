package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ko-stant/gridmaze/internal/geometry"
	"github.com/Ko-stant/gridmaze/internal/protocol"
	"github.com/Ko-stant/gridmaze/internal/session"
	"github.com/Ko-stant/gridmaze/internal/tile"
)

// IntentHandlers decodes browser intents and applies them to a session.
// Results reach the browser as patches published by the session itself.
type IntentHandlers struct {
	logger  Logger
	metrics *IntentMetrics
}

func NewIntentHandlers(logger Logger, metrics *IntentMetrics) *IntentHandlers {
	if metrics == nil {
		metrics = NewIntentMetrics()
	}
	return &IntentHandlers{logger: logger, metrics: metrics}
}

func decode[T any](env protocol.IntentEnvelope) (T, error) {
	var req T
	if err := json.Unmarshal(env.Payload, &req); err != nil {
		return req, fmt.Errorf("%w: %s: %v", protocol.ErrMalformedIntent, env.Type, err)
	}
	return req, nil
}

// HandleIntent routes env to its handler.
func (h *IntentHandlers) HandleIntent(s *session.Session, env protocol.IntentEnvelope) error {
	start := time.Now()
	err := h.dispatch(s, env)
	h.metrics.Track(env.Type, time.Since(start), err)
	return err
}

func (h *IntentHandlers) dispatch(s *session.Session, env protocol.IntentEnvelope) error {
	switch env.Type {
	case protocol.IntentToggleWall:
		req, err := decode[protocol.RequestToggleWall](env)
		if err != nil {
			return err
		}
		return h.HandleRequestToggleWall(s, req)
	case protocol.IntentRotate:
		req, err := decode[protocol.RequestRotate](env)
		if err != nil {
			return err
		}
		return h.HandleRequestRotate(s, req)
	case protocol.IntentGesture:
		req, err := decode[protocol.RequestGesture](env)
		if err != nil {
			return err
		}
		return h.HandleRequestGesture(s, req)
	case protocol.IntentCancelSweep:
		req, err := decode[protocol.RequestCancelSweep](env)
		if err != nil {
			return err
		}
		return h.HandleRequestCancelSweep(s, req)
	case protocol.IntentToggleImageMode:
		req, err := decode[protocol.RequestToggleImageMode](env)
		if err != nil {
			return err
		}
		return h.HandleRequestToggleImageMode(s, req)
	case protocol.IntentFocusTile:
		req, err := decode[protocol.RequestFocusTile](env)
		if err != nil {
			return err
		}
		return h.HandleRequestFocusTile(s, req)
	}
	return fmt.Errorf("%w: %q", protocol.ErrUnknownIntent, env.Type)
}

func (h *IntentHandlers) HandleRequestToggleWall(s *session.Session, req protocol.RequestToggleWall) error {
	if _, _, err := s.ToggleWallAt(tile.SurfaceID(req.Surface), req.X, req.Y); err != nil {
		h.logger.Printf("Toggle wall failed: %v", err)
		return err
	}
	return nil
}

func (h *IntentHandlers) HandleRequestRotate(s *session.Session, req protocol.RequestRotate) error {
	dir, err := geometry.ParseRotation(req.Direction)
	if err != nil {
		return err
	}
	surface := tile.SurfaceID(req.Surface)
	if req.Animate {
		_, err = s.StartSweep(surface, dir)
	} else {
		err = s.Rotate(surface, dir)
	}
	if err != nil {
		h.logger.Printf("Rotate failed: %v", err)
	}
	return err
}

func (h *IntentHandlers) HandleRequestGesture(s *session.Session, req protocol.RequestGesture) error {
	ok, err := s.Gesture(tile.SurfaceID(req.Surface), req.Direction)
	if err != nil {
		h.logger.Printf("Gesture failed: %v", err)
		return err
	}
	if !ok {
		h.logger.Printf("Gesture %q ignored", req.Direction)
	}
	return nil
}

func (h *IntentHandlers) HandleRequestCancelSweep(s *session.Session, req protocol.RequestCancelSweep) error {
	return s.CancelSweep(tile.SurfaceID(req.Surface))
}

func (h *IntentHandlers) HandleRequestToggleImageMode(s *session.Session, req protocol.RequestToggleImageMode) error {
	_, err := s.ToggleImageMode(tile.SurfaceID(req.Surface))
	return err
}

func (h *IntentHandlers) HandleRequestFocusTile(s *session.Session, req protocol.RequestFocusTile) error {
	return s.Focus(tile.SurfaceID(req.Surface))
}
