package models

// State represents a US state, used as a practice jurisdiction for
// attorneys and as a residence jurisdiction for clients
type State struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:forum_states_ux1;column:name"`
}

// TableName specifies the table name for State
func (State) TableName() string {
	return "forum_states"
}

// PracticeArea represents a legal subject-matter tag. Topics are
// categorized by practice area and attorneys declare them as specialties.
type PracticeArea struct {
	ID          int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Title       string `gorm:"type:varchar(100);not null;uniqueIndex:forum_practice_areas_ux1;column:title"`
	Description string `gorm:"type:text;not null;default:'';column:description"`
}

// TableName specifies the table name for PracticeArea
func (PracticeArea) TableName() string {
	return "forum_practice_areas"
}
