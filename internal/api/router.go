// Package api exposes sessions over HTTP: the page, the websocket stream and
// a small JSON API.
package api

import (
	"github.com/gin-gonic/gin"
)

// Controller registers its routes on the router's groups. Page routes sit at
// the root, API routes under BaseURL/v1.
type Controller interface {
	RegisterPages(*gin.RouterGroup)
	RegisterAPI(*gin.RouterGroup)
}

// Router manages the HTTP server and its controllers.
type Router struct {
	addr        string
	baseURL     string
	staticDir   string
	controllers []Controller
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Base URL for API routes
	StaticDir   string // Directory served under /static, empty to disable
	Controllers []Controller
}

func NewRouter(config Config) *Router {
	return &Router{
		addr:        config.Addr,
		baseURL:     config.BaseURL,
		staticDir:   config.StaticDir,
		controllers: config.Controllers,
	}
}

// Addr is the address the router was configured to listen on.
func (r *Router) Addr() string { return r.addr }

// Handler builds the gin engine with every route registered.
func (r *Router) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if r.staticDir != "" {
		router.Static("/static", r.staticDir)
	}

	pages := router.Group("/")
	api := router.Group(r.baseURL)
	v1 := api.Group("/v1")
	{
		for _, c := range r.controllers {
			c.RegisterPages(pages)
			c.RegisterAPI(v1)
		}
	}
	return router
}
