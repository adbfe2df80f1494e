package model

import "time"

// RoomType classifies a bookable space.
type RoomType string

const (
	RoomTypeStudy   RoomType = "study"
	RoomTypeMeeting RoomType = "meeting"
	RoomTypeEvent   RoomType = "event"
)

// Valid reports whether t is one of the known room types.
func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeStudy, RoomTypeMeeting, RoomTypeEvent:
		return true
	}
	return false
}

// Room is an entry of the bookable room catalog.
type Room struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Building  string    `gorm:"size:128;not null" json:"building"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Type      RoomType  `gorm:"size:16;not null;index" json:"type"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
