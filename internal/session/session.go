// Package session keeps the per-visitor application state and booking widget
// for the lifetime of a browser session.
package session

import (
	"context"
	"log"
	"sync"

	"aus-site-backend/internal/appstate"
	"aus-site-backend/internal/i18n"
	"aus-site-backend/internal/model"
	"aus-site-backend/internal/reservation"
)

// StateListener is told about every app state change of a session.
type StateListener interface {
	StateChanged(sessionID string, s appstate.State)
}

// ReservationListener is told about every booking widget change of a
// session, rendered in the session's language. It is called while the widget
// is locked and must not call back into it.
type ReservationListener interface {
	ReservationChanged(sessionID string, view reservation.View)
}

// PreferenceLoader restores a returning visitor's language and theme.
type PreferenceLoader interface {
	LoadPreference(ctx context.Context, sessionID string) (model.Preference, bool, error)
}

// Factory builds new sessions.
type Factory struct {
	Catalog              *reservation.Catalog
	Defaults             appstate.State
	ReservationOptions   []reservation.Option
	Preferences          PreferenceLoader
	StateListeners       []StateListener
	ReservationListeners []ReservationListener
}

// Session is one visitor's state.
type Session struct {
	ID    string
	State *appstate.Manager

	unsubscribe func()
	newWidget   func() *reservation.Controller

	mu     sync.Mutex
	widget *reservation.Controller
	closed bool
}

// New builds a session for id, restoring saved preferences when available.
func (f *Factory) New(ctx context.Context, id string) *Session {
	initial := f.initialState(ctx, id)

	s := &Session{ID: id, State: appstate.NewManager(initial)}
	if len(f.StateListeners) > 0 {
		listeners := f.StateListeners
		s.unsubscribe = s.State.Subscribe(func(st appstate.State) {
			for _, l := range listeners {
				l.StateChanged(id, st)
			}
		})
	}

	opts := append([]reservation.Option(nil), f.ReservationOptions...)
	if len(f.ReservationListeners) > 0 {
		listeners := f.ReservationListeners
		state := s.State
		opts = append(opts, reservation.WithObserver(func(snap reservation.Snapshot) {
			view := reservation.NewView(snap, state.Language())
			for _, l := range listeners {
				l.ReservationChanged(id, view)
			}
		}))
	}
	catalog := f.Catalog
	s.newWidget = func() *reservation.Controller {
		return reservation.New(catalog, opts...)
	}
	return s
}

func (f *Factory) initialState(ctx context.Context, id string) appstate.State {
	initial := f.Defaults
	if f.Preferences == nil {
		return initial
	}
	pref, found, err := f.Preferences.LoadPreference(ctx, id)
	if err != nil {
		log.Printf("Failed to restore preferences for session %s: %v", id, err)
		return initial
	}
	if !found {
		return initial
	}
	lang, err := i18n.ParseLanguage(pref.Language)
	if err != nil {
		log.Printf("Ignoring saved language %q for session %s", pref.Language, id)
	} else {
		initial.Language = lang
	}
	initial.DarkMode = pref.DarkMode
	return initial
}

// Reservations returns the session's booking widget, mounting one on first use.
func (s *Session) Reservations() *reservation.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.widget == nil {
		s.widget = s.newWidget()
	}
	return s.widget
}

// MountReservations discards the current booking widget, with its bookings
// and pending timer, and mounts a fresh one.
func (s *Session) MountReservations() *reservation.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.widget != nil {
		s.widget.Close()
	}
	s.widget = s.newWidget()
	return s.widget
}

// Close tears the session down. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.widget != nil {
		s.widget.Close()
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
