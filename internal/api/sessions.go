package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ko-stant/gridmaze/internal/geometry"
	"github.com/Ko-stant/gridmaze/internal/session"
	"github.com/Ko-stant/gridmaze/internal/tile"
)

// ToggleWallRequest is a click in canvas pixels, relative to the grid origin.
type ToggleWallRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

type ToggleWallResponse struct {
	Orientation string `json:"orientation"`
	A           int    `json:"a"`
	B           int    `json:"b"`
	Present     bool   `json:"present"`
}

type RotateRequest struct {
	Direction string `json:"direction" binding:"required"`
	Animate   bool   `json:"animate"`
}

// SessionController is the JSON view of running sessions.
type SessionController struct {
	manager *session.Manager
}

func NewSessionController(manager *session.Manager) *SessionController {
	return &SessionController{manager: manager}
}

func (sc *SessionController) RegisterPages(route *gin.RouterGroup) {}

func (sc *SessionController) RegisterAPI(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.create)
		sessions.GET("/:ID", sc.snapshot)
		sessions.DELETE("/:ID", sc.close)
		sessions.GET("/:ID/board", sc.board)
		sessions.GET("/:ID/tiles/:surface", sc.tile)
		sessions.POST("/:ID/tiles/:surface/walls", sc.toggleWall)
		sessions.POST("/:ID/tiles/:surface/rotate", sc.rotate)
	}
}

func (sc *SessionController) lookup(ctx *gin.Context) (*session.Session, bool) {
	e, err := sc.manager.Lookup(ctx.Params.ByName("ID"))
	if err != nil {
		respondError(ctx, err)
		return nil, false
	}
	return e.Session, true
}

func (sc *SessionController) create(ctx *gin.Context) {
	e, err := sc.manager.Create()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, e.Session.Snapshot())
}

func (sc *SessionController) snapshot(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.Snapshot())
}

func (sc *SessionController) close(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	if err := sc.manager.Close(s.ID()); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (sc *SessionController) board(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	b, err := s.Board()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, b)
}

func (sc *SessionController) tile(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	snap, err := s.TileSnapshot(tile.SurfaceID(ctx.Params.ByName("surface")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (sc *SessionController) toggleWall(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	var request ToggleWallRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, badRequest(err))
		return
	}

	addr, present, err := s.ToggleWallAt(tile.SurfaceID(ctx.Params.ByName("surface")), *request.X, *request.Y)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ToggleWallResponse{
		Orientation: string(addr.Orientation),
		A:           addr.A,
		B:           addr.B,
		Present:     present,
	})
}

// rotate turns a tile at once and returns its new snapshot, or starts a
// sweep and answers 202.
func (sc *SessionController) rotate(ctx *gin.Context) {
	s, ok := sc.lookup(ctx)
	if !ok {
		return
	}
	var request RotateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, badRequest(err))
		return
	}
	dir, err := geometry.ParseRotation(request.Direction)
	if err != nil {
		respondError(ctx, err)
		return
	}

	surface := tile.SurfaceID(ctx.Params.ByName("surface"))
	if request.Animate {
		if _, err := s.StartSweep(surface, dir); err != nil {
			respondError(ctx, err)
			return
		}
		ctx.Status(http.StatusAccepted)
		return
	}

	if err := s.Rotate(surface, dir); err != nil {
		respondError(ctx, err)
		return
	}
	snap, err := s.TileSnapshot(surface)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}
