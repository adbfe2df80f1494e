// Package reservation implements the room booking widget: the form being
// filled in, the bookings confirmed during the visit, and the transient
// success banner.
package reservation

import (
	"time"

	"aus-site-backend/internal/parse"
)

// DefaultPurpose is used when a booking is submitted without a purpose.
const DefaultPurpose = "General use"

// Booking is a confirmed reservation. Room and Building are copied from the
// catalog at booking time and do not follow later catalog changes.
type Booking struct {
	ID        string    `json:"id"`
	Room      string    `json:"room"`
	Building  string    `json:"building"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Purpose   string    `json:"purpose"`
}

// TimeSlots returns the 24 hourly slots "00:00" through "23:00".
func TimeSlots() []string {
	slots := make([]string, parse.SlotsPerDay)
	for h := range slots {
		slots[h] = parse.FormatSlot(h)
	}
	return slots
}
