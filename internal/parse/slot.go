package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var slotRe = regexp.MustCompile(`^(\d{1,2})\s*(?::\s*00)?\s*$`)

// SlotsPerDay is the number of hourly booking slots in a day.
const SlotsPerDay = 24

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Slot returns the canonical "HH:00" form of a raw hourly slot.
// Both "9", "09" and "09:00" are accepted; minutes other than :00 are not.
func Slot(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	m := slotRe.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("unable to parse slot: %q", raw)
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 0 || hour >= SlotsPerDay {
		return "", fmt.Errorf("slot hour out of range: %q", raw)
	}
	return FormatSlot(hour), nil
}

// FormatSlot renders an hour as a slot label.
func FormatSlot(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// Date parses a "YYYY-MM-DD" calendar date as midnight in loc.
func Date(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", raw, err)
	}
	return d, nil
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
