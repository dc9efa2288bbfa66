package models

import (
	"time"
)

// Follow is a directed edge meaning "follower follows followed".
// The composite primary key makes duplicate edges impossible at the
// schema level; the service layer additionally rejects self-follows.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey" json:"follower_id"`
	FollowedID uint      `gorm:"primaryKey" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
