// Package persist writes visitor preferences to the store in the background.
// Writes are fire-and-forget: a full queue or a failed write is logged and
// dropped, and never blocks or fails the toggle that caused it.
package persist

import (
	"context"
	"log"
	"time"

	"aus-site-backend/internal/appstate"
	"aus-site-backend/internal/model"
	"aus-site-backend/internal/store"
)

// PreferenceWriter is the subset of the store the workers need.
type PreferenceWriter interface {
	SavePreference(ctx context.Context, pref model.Preference) error
}

var _ PreferenceWriter = store.Store(nil)

// WorkerPool manages a pool of workers that save preferences.
type WorkerPool struct {
	size   int
	jobs   chan model.Preference
	writer PreferenceWriter
	now    func() time.Time
}

// NewWorkerPool creates a new worker pool with a queue of queueSize jobs.
func NewWorkerPool(size, queueSize int, writer PreferenceWriter) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	if queueSize <= 0 {
		queueSize = size
	}
	return &WorkerPool{
		size:   size,
		jobs:   make(chan model.Preference, queueSize),
		writer: writer,
		now:    time.Now,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Preference worker %d started", id)
	for {
		select {
		case pref := <-wp.jobs:
			if err := wp.writer.SavePreference(ctx, pref); err != nil {
				log.Printf("Preference worker %d: %v", id, err)
			}
		case <-ctx.Done():
			log.Printf("Preference worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a preference write. It never blocks; when the queue is
// full the write is dropped.
func (wp *WorkerPool) Dispatch(pref model.Preference) bool {
	select {
	case wp.jobs <- pref:
		return true
	default:
		log.Printf("Preference queue full, dropping write for session %s", pref.SessionID)
		return false
	}
}

// StateChanged queues the new state of a session for saving.
func (wp *WorkerPool) StateChanged(sessionID string, s appstate.State) {
	wp.Dispatch(model.Preference{
		SessionID: sessionID,
		Language:  s.Language.String(),
		DarkMode:  s.DarkMode,
		UpdatedAt: wp.now().UTC(),
	})
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan model.Preference {
	return wp.jobs
}
