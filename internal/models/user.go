package models

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// User represents an application user (client, attorney or support staff)
type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Email       string    `gorm:"type:varchar(254);not null;uniqueIndex:forum_users_ux1;column:email"`
	DisplayName string    `gorm:"type:varchar(100);not null;default:'';column:display_name"`
	IsAttorney  bool      `gorm:"not null;default:false;column:is_attorney"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Attorney *Attorney `gorm:"foreignKey:UserID;references:ID"`
	Client   *Client   `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "forum_users"
}

// Client holds the client-side profile for a user.
// The state is the client's residence jurisdiction; the opportunity
// matcher compares it against attorney practice jurisdictions.
type Client struct {
	ID      int64         `gorm:"primaryKey;autoIncrement;column:id"`
	UserID  int64         `gorm:"not null;uniqueIndex:forum_clients_ux1;column:user_id"`
	StateID sql.NullInt64 `gorm:"column:state_id"`

	// Relationships
	User  *User  `gorm:"foreignKey:UserID;references:ID"`
	State *State `gorm:"foreignKey:StateID;references:ID"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "forum_clients"
}

// Attorney holds the attorney-side profile for a user.
// Practice jurisdictions, specialties and keywords are the three inputs
// to opportunity matching.
type Attorney struct {
	ID       int64          `gorm:"primaryKey;autoIncrement;column:id"`
	UserID   int64          `gorm:"not null;uniqueIndex:forum_attorneys_ux1;column:user_id"`
	Verified bool           `gorm:"not null;default:false;column:verified"`
	Keywords pq.StringArray `gorm:"type:text[];column:keywords"`

	// Relationships
	User                  *User          `gorm:"foreignKey:UserID;references:ID"`
	PracticeJurisdictions []State        `gorm:"many2many:forum_attorney_jurisdictions;joinForeignKey:AttorneyID;joinReferences:StateID"`
	Specialties           []PracticeArea `gorm:"many2many:forum_attorney_specialties;joinForeignKey:AttorneyID;joinReferences:PracticeAreaID"`
	Followers             []User         `gorm:"many2many:forum_attorney_followers;joinForeignKey:AttorneyID;joinReferences:UserID"`
}

// TableName specifies the table name for Attorney
func (Attorney) TableName() string {
	return "forum_attorneys"
}

// UserStats is the denormalized per-user forum statistics row
type UserStats struct {
	ID           int64 `gorm:"primaryKey;autoIncrement;column:id"`
	UserID       int64 `gorm:"not null;uniqueIndex:forum_user_stats_ux1;column:user_id"`
	CommentCount int64 `gorm:"not null;default:0;column:comment_count"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for UserStats
func (UserStats) TableName() string {
	return "forum_user_stats"
}

// OpportunityStat is a daily sample of the opportunity count for an attorney
type OpportunityStat struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	UserID    int64     `gorm:"not null;column:user_id"`
	Tag       string    `gorm:"type:varchar(32);not null;column:tag"`
	Count     int64     `gorm:"not null;default:0;column:count"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for OpportunityStat
func (OpportunityStat) TableName() string {
	return "forum_opportunity_stats"
}

// Stat tags
const (
	StatTagOpportunities = "opportunities"
)
