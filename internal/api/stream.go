package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/Ko-stant/gridmaze/internal/protocol"
	"github.com/Ko-stant/gridmaze/internal/session"
)

type Logger interface {
	Printf(format string, v ...any)
}

// IntentHandler applies one browser intent to a session.
type IntentHandler interface {
	HandleIntent(s *session.Session, env protocol.IntentEnvelope) error
}

// StreamController upgrades /stream to a websocket bound to one session.
// The client first receives a SessionSnapshot, then every patch of the
// session; intents it sends are passed to the IntentHandler.
type StreamController struct {
	manager *session.Manager
	handler IntentHandler
	logger  Logger
}

func NewStreamController(manager *session.Manager, handler IntentHandler, logger Logger) *StreamController {
	if logger == nil {
		logger = log.Default()
	}
	return &StreamController{manager: manager, handler: handler, logger: logger}
}

func (sc *StreamController) RegisterPages(route *gin.RouterGroup) {
	route.GET("/stream", sc.stream)
}

func (sc *StreamController) RegisterAPI(route *gin.RouterGroup) {}

func (sc *StreamController) stream(ctx *gin.Context) {
	e, err := sc.manager.Lookup(ctx.Query("session"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	conn, err := websocket.Accept(ctx.Writer, ctx.Request, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		sc.logger.Printf("websocket accept failed: %v", err)
		return
	}
	if !e.Hub.Add(conn) {
		return
	}
	// The session ends with its last socket.
	defer func() {
		e.Hub.Remove(conn)
		sc.manager.CloseIfUnwatched(e.Session.ID())
	}()
	defer conn.Close(websocket.StatusNormalClosure, "")

	if err := e.Broadcaster.SendTo(conn, protocol.EventSessionSnapshot, e.Session.Snapshot()); err != nil {
		sc.logger.Printf("session %s: snapshot write failed: %v", e.Session.ID(), err)
		return
	}

	for {
		_, data, err := conn.Read(ctx.Request.Context())
		if err != nil {
			if websocket.CloseStatus(err) == -1 && !errors.Is(err, context.Canceled) {
				sc.logger.Printf("session %s: read: %v", e.Session.ID(), err)
			}
			return
		}

		var env protocol.IntentEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			sc.reportError(e, conn, "", errors.Join(protocol.ErrMalformedIntent, err))
			continue
		}
		if err := sc.handler.HandleIntent(e.Session, env); err != nil {
			sc.reportError(e, conn, env.Type, err)
		}
	}
}

// reportError sends err to the client that caused it only.
func (sc *StreamController) reportError(e *session.Entry, conn *websocket.Conn, intent string, err error) {
	sc.logger.Printf("session %s: %s failed: %v", e.Session.ID(), intent, err)
	payload := protocol.ErrorRaised{Code: session.ErrorCode(err), Message: err.Error(), Intent: intent}
	if werr := e.Broadcaster.SendTo(conn, protocol.EventErrorRaised, payload); werr != nil {
		sc.logger.Printf("session %s: error write failed: %v", e.Session.ID(), werr)
	}
}
