package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"aus-site-backend/config"
	"aus-site-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, h *Handler) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	sessions := mw.Session(h.sessions, cfg.Session.CookieName)

	// Localized read-only payloads are cached per language and theme.
	cacheStore := cache.New(cfg.Server.CacheTTL, 2*cfg.Server.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.Server.CacheTTL, mw.SessionStateKey)

	r.GET("/api/health", h.GetHealth)

	api := r.Group("/api")
	api.Use(rateLimiter, sessions)
	{
		api.GET("/state", h.GetState)
		api.POST("/state/language/toggle", h.ToggleLanguage)
		api.POST("/state/theme/toggle", h.ToggleTheme)

		api.GET("/i18n", caching, h.GetTranslations)
		api.GET("/pages/:page", caching, h.GetPage)

		content := api.Group("/content", caching)
		content.GET("/announcements", h.GetAnnouncements)
		content.GET("/events", h.GetEvents)
		content.GET("/food", h.GetFood)
		content.GET("/discounts", h.GetDiscounts)
		content.GET("/study-spaces", h.GetStudySpaces)

		api.GET("/rooms", caching, h.GetRooms)

		res := api.Group("/reservation")
		res.GET("", h.GetReservation)
		res.POST("/mount", h.MountReservation)
		res.PUT("/form", h.PutReservationForm)
		res.PUT("/tab", h.PutReservationTab)
		res.POST("/submit", h.SubmitReservation)
		res.GET("/bookings", h.GetBookings)
		res.DELETE("/bookings/:id", h.DeleteBooking)

		api.POST("/contact", h.PostContact)
		api.GET("/ws", h.ServeWebSocket)
	}

	return r
}
