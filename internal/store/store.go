package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aus-site-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	SeedRooms(ctx context.Context, rooms []model.Room) error
	ListRooms(ctx context.Context) ([]model.Room, error)
	SavePreference(ctx context.Context, pref model.Preference) error
	LoadPreference(ctx context.Context, sessionID string) (model.Preference, bool, error)
	SaveContactMessage(ctx context.Context, msg *model.ContactMessage) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// SeedRooms upserts the room catalog keyed by room id.
func (s *gormStore) SeedRooms(ctx context.Context, rooms []model.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	log.Printf("Seeding %d rooms...", len(rooms))
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "building", "capacity", "type", "updated_at"}),
		}).Create(&rooms).Error; err != nil {
			return fmt.Errorf("failed to seed rooms: %w", err)
		}
		return nil
	})
}

// ListRooms returns every room ordered by id.
func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// SavePreference upserts a visitor's language and theme. A write stamped
// older than the stored row is ignored, so out-of-order writes keep the
// latest preference.
func (s *gormStore) SavePreference(ctx context.Context, pref model.Preference) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"language", "dark_mode", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "preferences.updated_at <= excluded.updated_at"},
		}},
	}).Create(&pref).Error; err != nil {
		return fmt.Errorf("failed to save preference for session %s: %w", pref.SessionID, err)
	}
	return nil
}

// LoadPreference fetches a visitor's saved preference, if any.
func (s *gormStore) LoadPreference(ctx context.Context, sessionID string) (model.Preference, bool, error) {
	var pref model.Preference
	err := s.db.WithContext(ctx).First(&pref, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Preference{}, false, nil
	}
	if err != nil {
		return model.Preference{}, false, fmt.Errorf("failed to load preference for session %s: %w", sessionID, err)
	}
	return pref, true, nil
}

// SaveContactMessage records a message from the contact page.
func (s *gormStore) SaveContactMessage(ctx context.Context, msg *model.ContactMessage) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}
