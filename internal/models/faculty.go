package models

import "time"

// Faculty is a staff profile that oversees one or more teams.
type Faculty struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Designation    string    `gorm:"size:255" json:"designation"`
	Department     string    `gorm:"size:255" json:"department"`
	Specialization string    `gorm:"size:255" json:"specialization"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Teams          []Team    `gorm:"foreignKey:FacultyID" json:"teams,omitempty"`
}
