package models

import (
	"database/sql"
	"time"
)

// FollowedPost links a follower to a post. The (follower, post) pair is
// unique; a duplicate follow surfaces as a uniqueness violation which
// the follow service translates into ErrAlreadyFollowing.
type FollowedPost struct {
	ID                  int64         `gorm:"primaryKey;autoIncrement;column:id"`
	FollowerID          int64         `gorm:"not null;uniqueIndex:forum_followed_posts_ux1;column:follower_id"`
	PostID              int64         `gorm:"not null;uniqueIndex:forum_followed_posts_ux1;column:post_id"`
	UnreadCommentsCount int64         `gorm:"not null;default:0;column:unread_comments_count"`
	LastReadCommentID   sql.NullInt64 `gorm:"column:last_read_comment_id"`
	CreatedAt           time.Time     `gorm:"not null;column:created_at"`

	// Relationships
	Follower        *User    `gorm:"foreignKey:FollowerID;references:ID"`
	Post            *Post    `gorm:"foreignKey:PostID;references:ID"`
	LastReadComment *Comment `gorm:"foreignKey:LastReadCommentID;references:ID"`
}

// TableName specifies the table name for FollowedPost
func (FollowedPost) TableName() string {
	return "forum_followed_posts"
}
