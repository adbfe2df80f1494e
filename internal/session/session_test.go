package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aus-site-backend/internal/appstate"
	"aus-site-backend/internal/i18n"
	"aus-site-backend/internal/model"
	"aus-site-backend/internal/reservation"
)

type mockLoader struct {
	pref  model.Preference
	found bool
	err   error
	calls int
}

func (m *mockLoader) LoadPreference(_ context.Context, _ string) (model.Preference, bool, error) {
	m.calls++
	return m.pref, m.found, m.err
}

type recorder struct {
	mu     sync.Mutex
	states []string
	views  []reservation.View
}

func (r *recorder) StateChanged(sessionID string, s appstate.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, sessionID+":"+s.Language.String())
}

func (r *recorder) ReservationChanged(_ string, view reservation.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, view)
}

func newFactory(t *testing.T) *Factory {
	t.Helper()
	catalog, err := reservation.NewCatalog(reservation.DefaultRooms())
	require.NoError(t, err)
	return &Factory{Catalog: catalog, Defaults: appstate.DefaultState()}
}

func TestFactory_NewUsesDefaults(t *testing.T) {
	f := newFactory(t)
	f.Defaults = appstate.State{Language: i18n.French}

	s := f.New(context.Background(), "abc")

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, appstate.State{Language: i18n.French}, s.State.Snapshot())
}

func TestFactory_NewRestoresPreferences(t *testing.T) {
	testCases := []struct {
		name     string
		loader   *mockLoader
		expected appstate.State
	}{
		{
			name:     "Saved preference wins",
			loader:   &mockLoader{pref: model.Preference{Language: "fr", DarkMode: true}, found: true},
			expected: appstate.State{Language: i18n.French, DarkMode: true},
		},
		{
			name:     "Missing preference keeps defaults",
			loader:   &mockLoader{},
			expected: appstate.DefaultState(),
		},
		{
			name:     "Load error keeps defaults",
			loader:   &mockLoader{err: errors.New("db down"), found: true, pref: model.Preference{Language: "fr"}},
			expected: appstate.DefaultState(),
		},
		{
			name:     "Unknown language keeps default language",
			loader:   &mockLoader{pref: model.Preference{Language: "de", DarkMode: true}, found: true},
			expected: appstate.State{Language: i18n.English, DarkMode: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFactory(t)
			f.Preferences = tc.loader

			s := f.New(context.Background(), "abc")

			assert.Equal(t, tc.expected, s.State.Snapshot())
			assert.Equal(t, 1, tc.loader.calls)
		})
	}
}

func TestSession_ListenersReceiveSessionID(t *testing.T) {
	f := newFactory(t)
	rec := &recorder{}
	f.StateListeners = []StateListener{rec}
	f.ReservationListeners = []ReservationListener{rec}

	s := f.New(context.Background(), "abc")
	s.State.ToggleLanguage()
	s.Reservations().SetPurpose("Study group")

	assert.Equal(t, []string{"abc:fr"}, rec.states)
	require.Len(t, rec.views, 1)
	assert.Equal(t, "Study group", rec.views[0].Form.Purpose)
}

func TestSession_ReservationViewsFollowLanguage(t *testing.T) {
	f := newFactory(t)
	rec := &recorder{}
	f.ReservationListeners = []ReservationListener{rec}
	f.ReservationOptions = []reservation.Option{
		reservation.WithClock(func() time.Time { return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC) }),
		reservation.WithLocation(time.UTC),
	}

	s := f.New(context.Background(), "abc")
	s.State.ToggleLanguage()
	s.Reservations().SetPurpose("Réunion")

	require.Len(t, rec.views, 1)
	assert.Equal(t, "2026-10-15", rec.views[0].Form.Date)
	assert.Equal(t, "jeudi 15 octobre 2026", rec.views[0].Form.DateLabel)
	assert.Equal(t, "2026-10-15", rec.views[0].MinDate)
}

func TestSession_ReservationsIsStableUntilMount(t *testing.T) {
	s := newFactory(t).New(context.Background(), "abc")

	first := s.Reservations()
	assert.Same(t, first, s.Reservations())

	first.SetPurpose("Study group")
	fresh := s.MountReservations()

	assert.NotSame(t, first, fresh)
	assert.Same(t, fresh, s.Reservations())
	assert.Empty(t, fresh.Form().Purpose)
}

func TestSession_CloseStopsListening(t *testing.T) {
	f := newFactory(t)
	rec := &recorder{}
	f.StateListeners = []StateListener{rec}

	s := f.New(context.Background(), "abc")
	s.Close()
	s.Close()
	s.State.ToggleDarkMode()

	assert.Empty(t, rec.states)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	reg := NewRegistry(newFactory(t), time.Hour)

	s1, created := reg.GetOrCreate(context.Background(), "abc")
	assert.True(t, created)
	s2, created := reg.GetOrCreate(context.Background(), "abc")
	assert.False(t, created)
	assert.Same(t, s1, s2)

	got, ok := reg.Get("abc")
	assert.True(t, ok)
	assert.Same(t, s1, got)

	_, ok = reg.Get("other")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Count())
}

func TestRegistry_DeleteClosesSession(t *testing.T) {
	reg := NewRegistry(newFactory(t), time.Hour)
	s, _ := reg.GetOrCreate(context.Background(), "abc")

	reg.Delete("abc")

	_, ok := reg.Get("abc")
	assert.False(t, ok)
	s.mu.Lock()
	defer s.mu.Unlock()
	assert.True(t, s.closed)
}

func TestRegistry_ExpiredSessionIsReplaced(t *testing.T) {
	reg := NewRegistry(newFactory(t), 20*time.Millisecond)
	old, _ := reg.GetOrCreate(context.Background(), "abc")
	old.State.ToggleLanguage()

	time.Sleep(40 * time.Millisecond)

	fresh, created := reg.GetOrCreate(context.Background(), "abc")
	assert.True(t, created)
	assert.NotSame(t, old, fresh)
	assert.Equal(t, i18n.English, fresh.State.Language())

	old.mu.Lock()
	defer old.mu.Unlock()
	assert.True(t, old.closed)
}

func TestRegistry_Flush(t *testing.T) {
	reg := NewRegistry(newFactory(t), time.Hour)
	a, _ := reg.GetOrCreate(context.Background(), "a")
	b, _ := reg.GetOrCreate(context.Background(), "b")

	reg.Flush()

	assert.Equal(t, 0, reg.Count())
	for _, s := range []*Session{a, b} {
		s.mu.Lock()
		assert.True(t, s.closed)
		s.mu.Unlock()
	}
}
