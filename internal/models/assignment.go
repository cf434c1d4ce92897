package models

import "time"

// Assignment authorizes one evaluator to score one team. Rows are written only
// through admin actions. Deleting an assignment never cascades into the
// evaluation records already submitted for the pair.
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EvaluatorID uint      `gorm:"not null;uniqueIndex:idx_assignments_pair" json:"evaluator_id"`
	TeamID      uint      `gorm:"not null;uniqueIndex:idx_assignments_pair" json:"team_id"`
	Evaluator   Evaluator `gorm:"foreignKey:EvaluatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"evaluator"`
	Team        Team      `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"team"`
	CreatedAt   time.Time `json:"created_at"`
}
