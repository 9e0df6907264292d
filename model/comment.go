package model

import "time"

// MaxCommentLength caps the comment body, matching the store-level schema
// constraint.
const MaxCommentLength = 500

// Comment belongs to the article whose Comments list references it; there is
// no back-reference beyond that membership.
type Comment struct {
	Id          string    `gorm:"primaryKey" json:"_id"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      string    `gorm:"index;not null" json:"user"`
	Description string    `gorm:"size:500" json:"description"`
}
