package models

import "time"

// Evaluator is a judge invited to score assigned teams.
type Evaluator struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"size:255;not null" json:"name"`
	Email        string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Organization string       `gorm:"size:255" json:"organization"`
	UserID       *uint        `json:"user_id"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Assignments  []Assignment `gorm:"foreignKey:EvaluatorID" json:"assignments,omitempty"`
}
