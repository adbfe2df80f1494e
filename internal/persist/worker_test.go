package persist

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"aus-site-backend/internal/appstate"
	"aus-site-backend/internal/i18n"
	"aus-site-backend/internal/model"
	"aus-site-backend/internal/store"
)

// mockWriter is a mock implementation of the PreferenceWriter interface.
type mockWriter struct {
	mu    sync.Mutex
	saved []model.Preference
	err   error
}

func (m *mockWriter) SavePreference(_ context.Context, pref model.Preference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, pref)
	return m.err
}

func (m *mockWriter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestWorkerPool_StateChangedQueuesPreference(t *testing.T) {
	wp := NewWorkerPool(1, 4, &mockWriter{})
	fixed := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	wp.now = func() time.Time { return fixed }

	wp.StateChanged("abc", appstate.State{Language: i18n.French, DarkMode: true})

	select {
	case job := <-wp.Jobs():
		assert.Equal(t, model.Preference{SessionID: "abc", Language: "fr", DarkMode: true, UpdatedAt: fixed}, job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchDropsWhenFull(t *testing.T) {
	wp := NewWorkerPool(1, 1, &mockWriter{})

	assert.True(t, wp.Dispatch(model.Preference{SessionID: "a"}))
	assert.False(t, wp.Dispatch(model.Preference{SessionID: "b"}))
	assert.Len(t, wp.Jobs(), 1)
}

func TestWorkerPool_WorkersDrainQueue(t *testing.T) {
	writer := &mockWriter{err: errors.New("ignored")}
	wp := NewWorkerPool(2, 8, writer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	for i := 0; i < 5; i++ {
		wp.Dispatch(model.Preference{SessionID: "s", Language: "en"})
	}

	assert.Eventually(t, func() bool { return writer.count() == 5 }, time.Second, 10*time.Millisecond)
}

func TestWorkerPool_WritesThroughStore(t *testing.T) {
	gormDB, mock := newTestDB(t)
	wp := NewWorkerPool(1, 4, store.NewGormStore(gormDB))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "preferences"`)).
		WithArgs("abc", "fr", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	wp.Start(ctx)
	wp.StateChanged("abc", appstate.State{Language: i18n.French})

	assert.Eventually(t, func() bool { return mock.ExpectationsWereMet() == nil }, time.Second, 10*time.Millisecond)
}
