package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aus-site-backend/internal/content"
	"aus-site-backend/internal/model"
)

func wantsGroups(c *gin.Context) bool {
	switch c.Query("group") {
	case "1", "true":
		return true
	}
	return false
}

// GetAnnouncements handles GET /api/content/announcements.
func (h *Handler) GetAnnouncements(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.content.Announcements(s.State.Language()))
}

// GetEvents handles GET /api/content/events.
func (h *Handler) GetEvents(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.content.Events(s.State.Language()))
}

// GetFood handles GET /api/content/food?type=&group=.
func (h *Handler) GetFood(c *gin.Context) {
	if wantsGroups(c) {
		c.JSON(http.StatusOK, h.content.FoodByType())
		return
	}
	t := content.FoodType(c.Query("type"))
	if t != "" && !t.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid food type"})
		return
	}
	c.JSON(http.StatusOK, h.content.Food(t))
}

// GetDiscounts handles GET /api/content/discounts?type=.
func (h *Handler) GetDiscounts(c *gin.Context) {
	t := content.DiscountType(c.Query("type"))
	if t != "" && !t.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid discount type"})
		return
	}
	c.JSON(http.StatusOK, h.content.Discounts(t))
}

// GetStudySpaces handles GET /api/content/study-spaces.
func (h *Handler) GetStudySpaces(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.StudySpaces())
}

// GetRooms handles GET /api/rooms?type=&group=.
func (h *Handler) GetRooms(c *gin.Context) {
	if wantsGroups(c) {
		c.JSON(http.StatusOK, h.rooms.Grouped())
		return
	}
	t := model.RoomType(c.Query("type"))
	if t == "" {
		c.JSON(http.StatusOK, h.rooms.Rooms())
		return
	}
	if !t.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room type"})
		return
	}
	c.JSON(http.StatusOK, h.rooms.ByType(t))
}
