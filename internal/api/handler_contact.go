package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aus-site-backend/internal/model"
)

type postContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// PostContact handles POST /api/contact.
func (h *Handler) PostContact(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req postContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Message) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "name and message must not be blank"})
		return
	}

	lang := s.State.Language()
	msg := model.ContactMessage{
		SessionID: s.ID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Message:   req.Message,
		Language:  lang.String(),
	}
	if err := h.store.SaveContactMessage(c.Request.Context(), &msg); err != nil {
		log.Printf("Contact message from session %s not saved: %v", s.ID, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      msg.ID,
		"message": h.bundle.T(lang, "contactThanks"),
	})
}
