package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler implements the viewer endpoints.
type Handler struct {
	store Store
	stats *Stats
}

// NewHandler creates a handler over a simulation store.
func NewHandler(store Store, stats *Stats) *Handler {
	return &Handler{store: store, stats: stats}
}

// Health reports viewer liveness and the watched file.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"path":   h.store.Path(),
	})
}

// GetSimulation returns the whole simulation document.
func (h *Handler) GetSimulation(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Current())
}

// ListPairs returns all request/response pairs.
func (h *Handler) ListPairs(c *gin.Context) {
	s := h.store.Current()
	c.JSON(http.StatusOK, gin.H{
		"count": len(s.Data.Pairs),
		"pairs": s.Data.Pairs,
	})
}

// GetPair returns one pair by its position in the document.
func (h *Handler) GetPair(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	s := h.store.Current()
	if index < 0 || index >= len(s.Data.Pairs) {
		c.JSON(http.StatusNotFound, gin.H{"error": "pair not found"})
		return
	}
	c.JSON(http.StatusOK, s.Data.Pairs[index])
}

// ListDelays returns the global delay settings.
func (h *Handler) ListDelays(c *gin.Context) {
	s := h.store.Current()
	c.JSON(http.StatusOK, gin.H{
		"count":  len(s.Data.GlobalActions.Delays),
		"delays": s.Data.GlobalActions.Delays,
	})
}

// GetStats returns viewer request counters.
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Snapshot())
}
