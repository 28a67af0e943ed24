package model

import (
	"time"

	"gorm.io/gorm"
)

// Course ids are short operator-chosen codes (e.g. "CS"), not generated
// keys, so courses carry their own primary key instead of UUIDBase.
// swagger:model Course
type Course struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}
