package reservation

import (
	"time"

	"aus-site-backend/internal/i18n"
	"aus-site-backend/internal/parse"
)

// FormView is the form as shown to a visitor: dates as "YYYY-MM-DD" plus a
// localized label.
type FormView struct {
	Date      string `json:"date"`
	DateLabel string `json:"dateLabel"`
	RoomID    string `json:"roomId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Purpose   string `json:"purpose"`
}

// BookingView is a booking as shown to a visitor.
type BookingView struct {
	ID        string `json:"id"`
	Room      string `json:"room"`
	Building  string `json:"building"`
	Date      string `json:"date"`
	DateLabel string `json:"dateLabel"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Purpose   string `json:"purpose"`
}

// View is the whole widget as shown to a visitor. The HTTP API and the
// realtime push both send it.
type View struct {
	Form        FormView      `json:"form"`
	Bookings    []BookingView `json:"bookings"`
	ShowSuccess bool          `json:"showSuccess"`
	ActiveTab   Tab           `json:"activeTab"`
	MinDate     string        `json:"minDate"`
	TimeSlots   []string      `json:"timeSlots"`
}

func formatDay(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(parse.DateLayout)
}

// NewBookingView renders b with its date labelled in lang.
func NewBookingView(b Booking, lang i18n.Language) BookingView {
	return BookingView{
		ID:        b.ID,
		Room:      b.Room,
		Building:  b.Building,
		Date:      formatDay(b.Date),
		DateLabel: i18n.FormatDate(lang, b.Date),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Purpose:   b.Purpose,
	}
}

// NewBookingViews renders bookings in order.
func NewBookingViews(bookings []Booking, lang i18n.Language) []BookingView {
	out := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingView(b, lang))
	}
	return out
}

// NewView renders a snapshot in lang.
func NewView(snap Snapshot, lang i18n.Language) View {
	return View{
		Form: FormView{
			Date:      formatDay(snap.Form.Date),
			DateLabel: i18n.FormatDate(lang, snap.Form.Date),
			RoomID:    snap.Form.RoomID,
			StartTime: snap.Form.StartTime,
			EndTime:   snap.Form.EndTime,
			Purpose:   snap.Form.Purpose,
		},
		Bookings:    NewBookingViews(snap.Bookings, lang),
		ShowSuccess: snap.ShowSuccess,
		ActiveTab:   snap.ActiveTab,
		MinDate:     formatDay(snap.Today),
		TimeSlots:   TimeSlots(),
	}
}
