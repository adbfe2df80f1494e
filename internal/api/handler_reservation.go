package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aus-site-backend/internal/parse"
	"aus-site-backend/internal/reservation"
	"aus-site-backend/internal/session"
)

func (h *Handler) reservationView(s *session.Session, ctrl *reservation.Controller) reservation.View {
	return reservation.NewView(ctrl.Snapshot(), s.State.Language())
}

// GetReservation handles GET /api/reservation.
func (h *Handler) GetReservation(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.reservationView(s, s.Reservations()))
}

// MountReservation handles POST /api/reservation/mount.
func (h *Handler) MountReservation(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.reservationView(s, s.MountReservations()))
}

type putFormRequest struct {
	Date      *string `json:"date"`
	RoomID    *string `json:"roomId"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Purpose   *string `json:"purpose"`
}

// PutReservationForm handles PUT /api/reservation/form. Only the fields
// present in the body change; an empty string unsets a field. The request
// is checked in full before any field is set.
func (h *Handler) PutReservationForm(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req putFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctrl := s.Reservations()
	var date time.Time
	if req.Date != nil && *req.Date != "" {
		d, err := parse.Date(*req.Date, h.loc)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "date"})
			return
		}
		if !ctrl.IsSelectableDate(d) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": reservation.ErrPastDate.Error(), "field": "date"})
			return
		}
		date = d
	}
	for field, slot := range map[string]*string{"startTime": req.StartTime, "endTime": req.EndTime} {
		if slot == nil || *slot == "" {
			continue
		}
		if _, err := parse.Slot(*slot); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": reservation.ErrInvalidSlot.Error(), "field": field})
			return
		}
	}

	if req.Date != nil {
		if err := ctrl.SelectDate(date); err != nil {
			h.abortWithReservationError(c, err)
			return
		}
	}
	if req.RoomID != nil {
		ctrl.SelectRoom(*req.RoomID)
	}
	if req.StartTime != nil {
		if err := ctrl.SelectStartTime(*req.StartTime); err != nil {
			h.abortWithReservationError(c, err)
			return
		}
	}
	if req.EndTime != nil {
		if err := ctrl.SelectEndTime(*req.EndTime); err != nil {
			h.abortWithReservationError(c, err)
			return
		}
	}
	if req.Purpose != nil {
		ctrl.SetPurpose(*req.Purpose)
	}

	c.JSON(http.StatusOK, h.reservationView(s, ctrl))
}

type putTabRequest struct {
	Tab reservation.Tab `json:"tab" binding:"required"`
}

// PutReservationTab handles PUT /api/reservation/tab.
func (h *Handler) PutReservationTab(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req putTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctrl := s.Reservations()
	if err := ctrl.SetActiveTab(req.Tab); err != nil {
		h.abortWithReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.reservationView(s, ctrl))
}

// SubmitReservation handles POST /api/reservation/submit.
func (h *Handler) SubmitReservation(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	ctrl := s.Reservations()
	b, err := ctrl.Submit()
	if err != nil {
		h.abortWithReservationError(c, err)
		return
	}
	lang := s.State.Language()
	c.JSON(http.StatusCreated, gin.H{
		"booking":     reservation.NewBookingView(b, lang),
		"message":     h.bundle.T(lang, "roomBookingSuccess"),
		"reservation": h.reservationView(s, ctrl),
	})
}

// GetBookings handles GET /api/reservation/bookings.
func (h *Handler) GetBookings(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reservation.NewBookingViews(s.Reservations().Bookings(), s.State.Language()))
}

// DeleteBooking handles DELETE /api/reservation/bookings/:id. Unknown ids
// are not an error.
func (h *Handler) DeleteBooking(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	s.Reservations().CancelBooking(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) abortWithReservationError(c *gin.Context, err error) {
	var vErr *reservation.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error": vErr.Error(),
			"kind":  vErr.Kind,
			"field": vErr.Field,
		})
	case errors.Is(err, reservation.ErrPastDate):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "field": "date"})
	case errors.Is(err, reservation.ErrInvalidSlot), errors.Is(err, reservation.ErrInvalidTab):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, reservation.ErrClosed):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
