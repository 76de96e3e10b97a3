package models

import (
	"database/sql"
	"time"
)

// Post represents a thread inside a topic, opened by a client and
// consisting of comments. FirstCommentID points at the comment that
// opened the thread and is set once; LastCommentID and CommentCount
// are denormalized and maintained by forum.Maintainer.
type Post struct {
	ID             int64         `gorm:"primaryKey;autoIncrement;column:id"`
	TopicID        sql.NullInt64 `gorm:"column:topic_id"`
	Title          string        `gorm:"type:varchar(255);not null;column:title"`
	Description    string        `gorm:"type:text;not null;default:'';column:description"`
	AuthorID       int64         `gorm:"not null;column:author_id"`
	FirstCommentID sql.NullInt64 `gorm:"column:first_comment_id"`
	LastCommentID  sql.NullInt64 `gorm:"column:last_comment_id"`
	CommentCount   int64         `gorm:"not null;default:0;column:comment_count"`
	CreatedAt      time.Time     `gorm:"not null;column:created_at"`
	ModifiedAt     time.Time     `gorm:"not null;column:modified_at"`

	// Relationships
	Topic        *Topic    `gorm:"foreignKey:TopicID;references:ID"`
	Author       *User     `gorm:"foreignKey:AuthorID;references:ID"`
	FirstComment *Comment  `gorm:"foreignKey:FirstCommentID;references:ID"`
	LastComment  *Comment  `gorm:"foreignKey:LastCommentID;references:ID"`
	Comments     []Comment `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "forum_posts"
}
