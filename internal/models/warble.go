package models

import (
	"time"
)

// MaxWarbleLength bounds the text of a single warble.
const MaxWarbleLength = 140

// Warble is a posted message owned by exactly one user.
type Warble struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null;size:140" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"-" json:"likes_count"`
	// Liked indicates whether the current requesting user liked this warble (computed)
	Liked bool `gorm:"-" json:"liked"`
}
