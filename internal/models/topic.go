package models

import (
	"database/sql"
	"time"
)

// Topic represents a top-level discussion category, optionally tagged
// with a practice area so attorney opportunities can be filtered by
// specialty.
//
// CommentCount and LastCommentID are denormalized; they are maintained
// by forum.Maintainer after every comment mutation.
type Topic struct {
	ID             int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Title          string         `gorm:"type:varchar(255);not null;column:title"`
	Description    sql.NullString `gorm:"type:text;column:description"`
	PracticeAreaID sql.NullInt64  `gorm:"column:practice_area_id"`
	CommentCount   int64          `gorm:"not null;default:0;column:comment_count"`
	LastCommentID  sql.NullInt64  `gorm:"column:last_comment_id"`
	Featured       bool           `gorm:"not null;default:true;column:featured"`
	CreatedAt      time.Time      `gorm:"not null;column:created_at"`
	ModifiedAt     time.Time      `gorm:"not null;column:modified_at"`

	// Relationships
	PracticeArea *PracticeArea `gorm:"foreignKey:PracticeAreaID;references:ID"`
	LastComment  *Comment      `gorm:"foreignKey:LastCommentID;references:ID"`
	Followers    []User        `gorm:"many2many:forum_topic_followers;joinForeignKey:TopicID;joinReferences:UserID"`
	Posts        []Post        `gorm:"foreignKey:TopicID;references:ID"`
}

// TableName specifies the table name for Topic
func (Topic) TableName() string {
	return "forum_topics"
}
