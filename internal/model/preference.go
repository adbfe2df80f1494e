package model

import "time"

// Preference is the persisted copy of a visitor's language and theme.
type Preference struct {
	SessionID string    `gorm:"primaryKey;size:64"`
	Language  string    `gorm:"size:8;not null"`
	DarkMode  bool      `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
