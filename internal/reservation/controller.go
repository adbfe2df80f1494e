package reservation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"aus-site-backend/internal/parse"
)

// DefaultSuccessDelay is how long the success banner stays up.
const DefaultSuccessDelay = 3 * time.Second

// Tab is the visible pane of the booking widget.
type Tab string

const (
	TabBookingForm Tab = "booking-form"
	TabMyBookings  Tab = "my-bookings"
)

// Timer is a pending one-shot callback. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Form holds the fields of the booking being filled in. A zero Date and
// empty strings mean "not selected".
type Form struct {
	Date      time.Time `json:"date"`
	RoomID    string    `json:"roomId"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Purpose   string    `json:"purpose"`
}

// Snapshot is a copy of the whole widget state.
type Snapshot struct {
	Form        Form      `json:"form"`
	Bookings    []Booking `json:"bookings"`
	ShowSuccess bool      `json:"showSuccess"`
	ActiveTab   Tab       `json:"activeTab"`
	Today       time.Time `json:"today"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLocation sets the zone that defines calendar days.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithSuccessDelay sets how long the success banner stays up.
func WithSuccessDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc for the banner timer.
func WithAfterFunc(f func(time.Duration, func()) Timer) Option {
	return func(c *Controller) { c.afterFunc = f }
}

// WithIDGenerator replaces the booking id generator.
func WithIDGenerator(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

// WithObserver registers a callback that receives the widget state after
// every change, including the banner auto-dismiss. It runs with the
// controller locked and must not call back into the controller.
func WithObserver(f func(Snapshot)) Option {
	return func(c *Controller) { c.observer = f }
}

// Controller manages one booking widget instance. It is safe for
// concurrent use.
type Controller struct {
	catalog   *Catalog
	now       func() time.Time
	loc       *time.Location
	delay     time.Duration
	afterFunc func(time.Duration, func()) Timer
	newID     func() string
	observer  func(Snapshot)

	mu           sync.Mutex
	form         Form
	bookings     []Booking
	showSuccess  bool
	activeTab    Tab
	successTimer Timer
	successGen   uint64
	closed       bool
}

// New creates a controller over catalog. The date field starts at today.
func New(catalog *Catalog, opts ...Option) *Controller {
	c := &Controller{
		catalog: catalog,
		now:     time.Now,
		loc:     time.Local,
		delay:   DefaultSuccessDelay,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		newID:     uuid.NewString,
		activeTab: TabBookingForm,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.form.Date = c.today()
	return c
}

func (c *Controller) today() time.Time {
	return parse.Midnight(c.now(), c.loc)
}

// Today returns the first selectable day.
func (c *Controller) Today() time.Time {
	return c.today()
}

// IsSelectableDate reports whether the date picker accepts d: today and any
// later day are selectable, earlier days are not.
func (c *Controller) IsSelectableDate(d time.Time) bool {
	return !parse.Midnight(d, c.loc).Before(c.today())
}

// SelectRoom sets the room field. Unknown ids are caught on submit.
func (c *Controller) SelectRoom(roomID string) {
	c.update(func() { c.form.RoomID = roomID })
}

// SelectDate sets the date field to the calendar day of d.
func (c *Controller) SelectDate(d time.Time) error {
	if d.IsZero() {
		c.ClearDate()
		return nil
	}
	if !c.IsSelectableDate(d) {
		return fmt.Errorf("%w: %s", ErrPastDate, d.Format(parse.DateLayout))
	}
	day := parse.Midnight(d, c.loc)
	c.update(func() { c.form.Date = day })
	return nil
}

// ClearDate unsets the date field.
func (c *Controller) ClearDate() {
	c.update(func() { c.form.Date = time.Time{} })
}

// SelectStartTime sets the start slot. An empty slot unsets it.
func (c *Controller) SelectStartTime(slot string) error {
	s, err := normalizeSlot(slot)
	if err != nil {
		return err
	}
	c.update(func() { c.form.StartTime = s })
	return nil
}

// SelectEndTime sets the end slot. An empty slot unsets it.
func (c *Controller) SelectEndTime(slot string) error {
	s, err := normalizeSlot(slot)
	if err != nil {
		return err
	}
	c.update(func() { c.form.EndTime = s })
	return nil
}

func normalizeSlot(slot string) (string, error) {
	if slot == "" {
		return "", nil
	}
	s, err := parse.Slot(slot)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return s, nil
}

// SetPurpose sets the free-text purpose.
func (c *Controller) SetPurpose(text string) {
	c.update(func() { c.form.Purpose = text })
}

// SetActiveTab switches panes. Form fields are kept.
func (c *Controller) SetActiveTab(tab Tab) error {
	if tab != TabBookingForm && tab != TabMyBookings {
		return fmt.Errorf("%w: %q", ErrInvalidTab, tab)
	}
	c.update(func() { c.activeTab = tab })
	return nil
}

// Submit turns the form into a booking. An incomplete form or an unknown
// room yields a *ValidationError and changes nothing. Overlapping bookings
// are accepted and the end slot is not checked against the start slot.
func (c *Controller) Submit() (Booking, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Booking{}, ErrClosed
	}
	if err := c.validateLocked(); err != nil {
		return Booking{}, err
	}
	room, ok := c.catalog.Lookup(c.form.RoomID)
	if !ok {
		return Booking{}, &ValidationError{Kind: UnknownRoom, Field: "roomId", Value: c.form.RoomID}
	}

	purpose := c.form.Purpose
	if purpose == "" {
		purpose = DefaultPurpose
	}
	b := Booking{
		ID:        c.newID(),
		Room:      room.Name,
		Building:  room.Building,
		Date:      c.form.Date,
		StartTime: c.form.StartTime,
		EndTime:   c.form.EndTime,
		Purpose:   purpose,
	}
	c.bookings = append(c.bookings, b)

	c.form.RoomID = ""
	c.form.StartTime = ""
	c.form.EndTime = ""
	c.form.Purpose = ""
	c.showSuccess = true
	c.scheduleDismissLocked()

	c.notifyLocked()
	return b, nil
}

func (c *Controller) validateLocked() error {
	switch {
	case c.form.Date.IsZero():
		return &ValidationError{Kind: MissingField, Field: "date"}
	case c.form.RoomID == "":
		return &ValidationError{Kind: MissingField, Field: "roomId"}
	case c.form.StartTime == "":
		return &ValidationError{Kind: MissingField, Field: "startTime"}
	case c.form.EndTime == "":
		return &ValidationError{Kind: MissingField, Field: "endTime"}
	}
	return nil
}

// scheduleDismissLocked restarts the banner timer. A callback from an
// earlier submission that fires late is ignored via the generation counter.
func (c *Controller) scheduleDismissLocked() {
	if c.successTimer != nil {
		c.successTimer.Stop()
	}
	c.successGen++
	gen := c.successGen
	c.successTimer = c.afterFunc(c.delay, func() { c.dismissSuccess(gen) })
}

func (c *Controller) dismissSuccess(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.successGen || !c.showSuccess {
		return
	}
	c.showSuccess = false
	c.successTimer = nil
	c.notifyLocked()
}

// CancelBooking removes the booking with the given id. It reports whether a
// booking was removed; an unknown id is not an error.
func (c *Controller) CancelBooking(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, b := range c.bookings {
		if b.ID == id {
			c.bookings = append(c.bookings[:i:i], c.bookings[i+1:]...)
			c.notifyLocked()
			return true
		}
	}
	return false
}

// Bookings returns the confirmed bookings in submission order.
func (c *Controller) Bookings() []Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyBookingsLocked()
}

// ShowSuccess reports whether the success banner is up.
func (c *Controller) ShowSuccess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showSuccess
}

// Form returns the current form fields.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// ActiveTab returns the visible pane.
func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// Snapshot returns a copy of the whole widget state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close tears the controller down and cancels a pending banner dismissal.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.successTimer != nil {
		c.successTimer.Stop()
		c.successTimer = nil
	}
}

func (c *Controller) update(mutate func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mutate()
	c.notifyLocked()
}

func (c *Controller) notifyLocked() {
	if c.observer != nil && !c.closed {
		c.observer(c.snapshotLocked())
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Form:        c.form,
		Bookings:    c.copyBookingsLocked(),
		ShowSuccess: c.showSuccess,
		ActiveTab:   c.activeTab,
		Today:       c.today(),
	}
}

func (c *Controller) copyBookingsLocked() []Booking {
	out := make([]Booking, len(c.bookings))
	copy(out, c.bookings)
	return out
}
