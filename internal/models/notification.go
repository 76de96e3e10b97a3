package models

import (
	"database/sql"
	"time"
)

// Notification represents a forum notification row. Fan-out is done by
// forum.Notifier after the triggering write has committed.
type Notification struct {
	ID        int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Type      int16          `gorm:"type:smallint;not null;column:type_id"`
	CreatedAt time.Time      `gorm:"not null;column:created_at"`
	SrcID     sql.NullInt64  `gorm:"column:src_id"`
	DstID     sql.NullInt64  `gorm:"column:dst_id"`
	PostID    sql.NullInt64  `gorm:"column:post_id"`
	Payload   sql.NullString `gorm:"type:text;column:payload"`
	IsRead    bool           `gorm:"not null;default:false;column:is_read"`

	// Relationships
	Src  *User `gorm:"foreignKey:SrcID;references:ID"`
	Dst  *User `gorm:"foreignKey:DstID;references:ID"`
	Post *Post `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "forum_notifications"
}

// Notification type constants
const (
	NotifyTypeNewComment      int16 = 1
	NotifyTypeNewPost         int16 = 2
	NotifyTypeAttorneyComment int16 = 3
	NotifyTypeOpportunity     int16 = 4
)
