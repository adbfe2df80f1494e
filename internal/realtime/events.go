package realtime

import (
	"log"

	"aus-site-backend/internal/appstate"
	"aus-site-backend/internal/reservation"
)

// EventBroadcaster turns session state changes into WebSocket messages.
type EventBroadcaster struct {
	hub *Hub
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster(hub *Hub) *EventBroadcaster {
	return &EventBroadcaster{hub: hub}
}

// StateChanged sends an appstate.changed event to the session's clients.
func (b *EventBroadcaster) StateChanged(sessionID string, s appstate.State) {
	b.publish(sessionID, NewMessage(TypeAppStateChanged, NewAppStatePayload(s)))
}

// ReservationChanged sends a reservation.changed event to the session's
// clients. The payload has the same shape as the HTTP reservation responses.
func (b *EventBroadcaster) ReservationChanged(sessionID string, view reservation.View) {
	b.publish(sessionID, NewMessage(TypeReservationChanged, view))
}

func (b *EventBroadcaster) publish(sessionID string, msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}
	b.hub.Publish(sessionID, data)
}
