package models

import (
	"time"
)

// Comment represents a single message inside a post. Ordering is by
// creation time; a comment's position is the number of comments on the
// same post created strictly earlier.
type Comment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID     int64     `gorm:"not null;column:post_id"`
	AuthorID   int64     `gorm:"not null;column:author_id"`
	Text       string    `gorm:"type:text;not null;column:text"`
	CreatedAt  time.Time `gorm:"not null;column:created_at"`
	ModifiedAt time.Time `gorm:"not null;column:modified_at"`

	// Relationships
	Post   *Post `gorm:"foreignKey:PostID;references:ID"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID"`

	// Position is filled by CommentRepository queries, not persisted
	Position int64 `gorm:"->;-:migration;column:position"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "forum_comments"
}
