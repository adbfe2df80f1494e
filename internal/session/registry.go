package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Registry holds live sessions and expires them after an idle period.
// Expired or deleted sessions are closed.
type Registry struct {
	factory  *Factory
	sessions *cache.Cache
	idle     time.Duration
	mu       sync.Mutex
}

// NewRegistry creates a registry whose sessions expire after idle.
func NewRegistry(factory *Factory, idle time.Duration) *Registry {
	cleanup := idle / 2
	if cleanup > time.Minute {
		cleanup = time.Minute
	}
	sessions := cache.New(idle, cleanup)
	sessions.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.Close()
		}
		log.Printf("Session %s closed", id)
	})
	return &Registry{factory: factory, sessions: sessions, idle: idle}
}

// Get returns a live session and refreshes its idle timer.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

func (r *Registry) getLocked(id string) (*Session, bool) {
	v, found := r.sessions.Get(id)
	if !found {
		return nil, false
	}
	s := v.(*Session)
	r.sessions.Set(id, s, cache.DefaultExpiration)
	return s, true
}

// GetOrCreate returns the session for id, creating it when it does not exist
// or has expired. created reports whether a new session was built.
func (r *Registry) GetOrCreate(ctx context.Context, id string) (s *Session, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.getLocked(id); ok {
		return s, false
	}
	// An expired entry may linger until the janitor runs; evict it so it
	// is closed before being replaced.
	r.sessions.Delete(id)
	s = r.factory.New(ctx, id)
	r.sessions.Set(id, s, cache.DefaultExpiration)
	return s, true
}

// Delete closes and forgets a session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions.Delete(id)
}

// Count returns the number of sessions held, including expired ones not yet
// swept.
func (r *Registry) Count() int {
	return r.sessions.ItemCount()
}

// Flush closes every session.
func (r *Registry) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions.DeleteExpired()
	for id := range r.sessions.Items() {
		r.sessions.Delete(id)
	}
}

// IdleTimeout returns how long a session lives without requests.
func (r *Registry) IdleTimeout() time.Duration {
	return r.idle
}
