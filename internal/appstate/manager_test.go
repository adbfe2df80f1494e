package appstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"aus-site-backend/internal/i18n"
)

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(State{})
	assert.Equal(t, i18n.English, m.Language())
	assert.False(t, m.DarkMode())
	assert.Equal(t, ThemeLight, m.Snapshot().Theme())
}

func TestToggleLanguage_Parity(t *testing.T) {
	for n := 0; n <= 7; n++ {
		m := NewManager(DefaultState())
		for i := 0; i < n; i++ {
			m.ToggleLanguage()
		}
		if n%2 == 0 {
			assert.Equal(t, i18n.English, m.Language(), "after %d toggles", n)
		} else {
			assert.Equal(t, i18n.French, m.Language(), "after %d toggles", n)
		}
		assert.False(t, m.DarkMode(), "language toggles must not touch the theme")
	}
}

func TestToggleDarkMode_Parity(t *testing.T) {
	for n := 0; n <= 7; n++ {
		m := NewManager(DefaultState())
		for i := 0; i < n; i++ {
			m.ToggleDarkMode()
		}
		assert.Equal(t, n%2 == 1, m.DarkMode(), "after %d toggles", n)
		assert.Equal(t, i18n.English, m.Language(), "theme toggles must not touch the language")
	}
}

func TestToggle_ReachesAllFourStates(t *testing.T) {
	m := NewManager(DefaultState())
	seen := map[State]bool{m.Snapshot(): true}
	seen[m.ToggleLanguage()] = true
	seen[m.ToggleDarkMode()] = true
	seen[m.ToggleLanguage()] = true
	seen[m.ToggleDarkMode()] = true
	assert.Len(t, seen, 4)
	assert.Equal(t, DefaultState(), m.Snapshot())
}

func TestSubscribe_NotifiedSynchronously(t *testing.T) {
	m := NewManager(DefaultState())

	var got []State
	m.Subscribe(func(s State) {
		// The manager already reflects the new state when listeners run.
		assert.Equal(t, s, m.Snapshot())
		got = append(got, s)
	})

	m.ToggleLanguage()
	m.ToggleDarkMode()

	assert.Equal(t, []State{
		{Language: i18n.French},
		{Language: i18n.French, DarkMode: true},
	}, got)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	m := NewManager(DefaultState())

	var a, b int
	unsubA := m.Subscribe(func(State) { a++ })
	m.Subscribe(func(State) { b++ })

	m.ToggleLanguage()
	unsubA()
	unsubA()
	m.ToggleLanguage()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestToggle_ConcurrentCallersKeepParity(t *testing.T) {
	m := NewManager(DefaultState())

	var mu sync.Mutex
	notified := 0
	m.Subscribe(func(State) {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.ToggleDarkMode()
		}()
	}
	wg.Wait()

	assert.False(t, m.DarkMode())
	assert.Equal(t, 100, notified)
}
