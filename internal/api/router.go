// Package api exposes a read-only HTTP view of a loaded simulation:
// the whole document, its pairs and delays, plus a websocket feed of
// reload events when file watching is on.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/simforge/simforge/internal/live"
	"github.com/simforge/simforge/sim"
)

// Store provides the simulation being viewed. Implementations must be
// safe for concurrent reads while the watcher swaps the document.
type Store interface {
	Current() *sim.Simulation
	Path() string
}

// Router wires the viewer endpoints.
type Router struct {
	engine  *gin.Engine
	handler *Handler
	stats   *Stats
}

// NewRouter creates the viewer router. The broadcaster may be nil when
// file watching is disabled; the /_ws endpoint is then not registered.
func NewRouter(store Store, broadcaster *live.Broadcaster, log zerolog.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine: gin.New(),
		stats:  NewStats(),
	}
	r.handler = NewHandler(store, r.stats)

	r.engine.Use(gin.Recovery())
	r.engine.Use(r.countRequests())

	api := r.engine.Group("/_api")
	{
		api.GET("/health", r.handler.Health)
		api.GET("/simulation", r.handler.GetSimulation)
		api.GET("/pairs", r.handler.ListPairs)
		api.GET("/pairs/:index", r.handler.GetPair)
		api.GET("/delays", r.handler.ListDelays)
		api.GET("/stats", r.handler.GetStats)
	}

	if broadcaster != nil {
		ws := live.NewWebSocketHandler(broadcaster, log)
		r.engine.GET("/_ws", gin.WrapH(ws))
	}

	return r
}

// Handler returns the router as an http.Handler.
func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if route := c.FullPath(); route != "" {
			r.stats.Record(route)
		}
	}
}
