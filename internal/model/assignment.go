package model

import (
	"time"
)

// Assignment is one homework definition inside a course's catalog.
// A nil DueAt means the assignment has no due date and counts as due.
// swagger:model Assignment
type Assignment struct {
	UUIDBase
	CourseID    string     `gorm:"size:36;index;not null" json:"courseId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueAt       *time.Time `gorm:"index" json:"dueAt,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
