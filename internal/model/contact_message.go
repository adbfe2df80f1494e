package model

import "time"

// ContactMessage is a message left through the contact page.
type ContactMessage struct {
	ID        int64     `gorm:"primaryKey"`
	SessionID string    `gorm:"size:64;index"`
	Name      string    `gorm:"size:256;not null"`
	Email     string    `gorm:"size:256;not null"`
	Message   string    `gorm:"type:text;not null"`
	Language  string    `gorm:"size:8;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
