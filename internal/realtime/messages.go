package realtime

import (
	"encoding/json"
	"time"

	"aus-site-backend/internal/appstate"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	TypeAppStateChanged    MessageType = "appstate.changed"
	TypeReservationChanged MessageType = "reservation.changed"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// AppStatePayload is the payload for appstate.changed events.
type AppStatePayload struct {
	Language string `json:"language"`
	DarkMode bool   `json:"darkMode"`
	Theme    string `json:"theme"`
}

// NewAppStatePayload flattens a state for the wire.
func NewAppStatePayload(s appstate.State) AppStatePayload {
	return AppStatePayload{
		Language: s.Language.String(),
		DarkMode: s.DarkMode,
		Theme:    string(s.Theme()),
	}
}
