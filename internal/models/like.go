package models

import (
	"time"
)

// Like records that a user has liked a warble.
// At most one row may exist per (user, warble) pair.
type Like struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	WarbleID  uint      `gorm:"primaryKey" json:"warble_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Warble Warble `gorm:"foreignKey:WarbleID;constraint:OnDelete:CASCADE" json:"warble,omitempty"`
}
