package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ko-stant/gridmaze/internal/session"
	"github.com/Ko-stant/gridmaze/internal/web/views"
)

// PageController serves the GridMaze page. Each load starts a new session.
type PageController struct {
	manager *session.Manager
}

func NewPageController(manager *session.Manager) *PageController {
	return &PageController{manager: manager}
}

func (pc *PageController) RegisterPages(route *gin.RouterGroup) {
	route.GET("/", pc.index)
}

func (pc *PageController) RegisterAPI(route *gin.RouterGroup) {}

func (pc *PageController) index(ctx *gin.Context) {
	e, err := pc.manager.Create()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(http.StatusOK)
	if err := views.IndexPage(e.Session.Snapshot()).Render(ctx.Request.Context(), ctx.Writer); err != nil {
		_ = ctx.Error(err)
	}
}
