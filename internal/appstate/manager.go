// Package appstate holds a visitor's language and theme and tells every
// subscriber when either changes.
package appstate

import (
	"sync"

	"aus-site-backend/internal/i18n"
)

// Theme names the active visual theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// State is an immutable snapshot of the application state.
type State struct {
	Language i18n.Language `json:"language"`
	DarkMode bool          `json:"darkMode"`
}

// Theme derives the visual theme from the dark mode flag.
func (s State) Theme() Theme {
	if s.DarkMode {
		return ThemeDark
	}
	return ThemeLight
}

// DefaultState is English in light mode.
func DefaultState() State {
	return State{Language: i18n.English}
}

// Listener receives the new state after every toggle.
type Listener func(State)

// Manager is the single source of truth for one visitor's language and theme.
//
// Toggles are serialized: the flag flip and the notification of every
// listener complete before the next toggle starts, so listeners observe
// states in order. Listeners may read the manager but must not toggle it.
type Manager struct {
	toggleMu sync.Mutex

	mu        sync.RWMutex
	state     State
	listeners map[uint64]Listener
	nextID    uint64
}

// NewManager creates a manager starting from initial. An empty language
// falls back to English.
func NewManager(initial State) *Manager {
	if initial.Language == "" {
		initial.Language = i18n.English
	}
	return &Manager{
		state:     initial,
		listeners: make(map[uint64]Listener),
	}
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Language returns the current language.
func (m *Manager) Language() i18n.Language {
	return m.Snapshot().Language
}

// DarkMode reports whether the dark theme is active.
func (m *Manager) DarkMode() bool {
	return m.Snapshot().DarkMode
}

// ToggleLanguage flips EN <-> FR and returns the new state.
func (m *Manager) ToggleLanguage() State {
	return m.apply(func(s *State) { s.Language = s.Language.Toggle() })
}

// ToggleDarkMode flips the theme and returns the new state.
func (m *Manager) ToggleDarkMode() State {
	return m.apply(func(s *State) { s.DarkMode = !s.DarkMode })
}

// Subscribe registers l and returns a function that removes it.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) apply(mutate func(*State)) State {
	m.toggleMu.Lock()
	defer m.toggleMu.Unlock()

	m.mu.Lock()
	mutate(&m.state)
	next := m.state
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}
