// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Default profile images applied at signup when the user supplies none.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// User represents an account in the Warbler application.
//
// Rows are hard-deleted: account deletion removes the user's warbles,
// likes and follow edges in the same transaction, so no soft-delete
// column is carried.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null" json:"username"`
	Email          string    `gorm:"unique;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	ImageURL       string    `gorm:"default:'/static/images/default-pic.png'" json:"image_url"`
	HeaderImageURL string    `gorm:"default:'/static/images/warbler-hero.jpg'" json:"header_image_url"`
	Bio            string    `json:"bio"`
	Location       string    `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Warbles        []Warble  `gorm:"foreignKey:UserID" json:"warbles,omitempty"`
}
