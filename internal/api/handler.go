package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aus-site-backend/internal/content"
	"aus-site-backend/internal/i18n"
	"aus-site-backend/internal/mw"
	"aus-site-backend/internal/realtime"
	"aus-site-backend/internal/reservation"
	"aus-site-backend/internal/session"
	"aus-site-backend/internal/store"
)

// Deps are the shared dependencies of the API handlers.
type Deps struct {
	Store    store.Store
	Bundle   *i18n.Bundle
	Content  *content.Catalog
	Rooms    *reservation.Catalog
	Sessions *session.Registry
	Hub      *realtime.Hub
	Location *time.Location
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	bundle   *i18n.Bundle
	content  *content.Catalog
	rooms    *reservation.Catalog
	sessions *session.Registry
	hub      *realtime.Hub
	events   *realtime.EventBroadcaster
	loc      *time.Location
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	h := &Handler{
		store:    d.Store,
		bundle:   d.Bundle,
		content:  d.Content,
		rooms:    d.Rooms,
		sessions: d.Sessions,
		hub:      d.Hub,
		loc:      loc,
	}
	if d.Hub != nil {
		h.events = realtime.NewEventBroadcaster(d.Hub)
	}
	return h
}

// currentSession returns the request's session or aborts the request.
func currentSession(c *gin.Context) (*session.Session, bool) {
	s := mw.CurrentSession(c)
	if s == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session is not available"})
		return nil, false
	}
	return s, true
}

// GetHealth reports liveness and a few gauges.
func (h *Handler) GetHealth(c *gin.Context) {
	resp := gin.H{"status": "ok", "time": time.Now().UTC()}
	if h.sessions != nil {
		resp["sessions"] = h.sessions.Count()
	}
	if h.hub != nil {
		resp["websocketClients"] = h.hub.ClientCount()
	}
	c.JSON(http.StatusOK, resp)
}
