package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Evaluation statuses. Submitted is terminal; resubmissions overwrite in place.
const (
	EvaluationStatusDraft     = "draft"
	EvaluationStatusSubmitted = "submitted"
)

// Evaluation is one evaluator's scored assessment of one team. The composite
// unique index is what serializes racing submits for the same pair: the store
// upserts against it so the row count can never exceed one per pair.
type Evaluation struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TeamID      uint           `gorm:"not null;uniqueIndex:idx_evaluations_pair" json:"team_id"`
	EvaluatorID uint           `gorm:"not null;uniqueIndex:idx_evaluations_pair" json:"evaluator_id"`
	Scores      datatypes.JSON `gorm:"type:json" json:"-"`
	Comments    string         `gorm:"type:text" json:"comments"`
	Status      string         `gorm:"size:32;not null" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Team        Team           `gorm:"foreignKey:TeamID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"team"`
	Evaluator   Evaluator      `gorm:"foreignKey:EvaluatorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"evaluator"`
}

// SetScores serializes per-criterion scores into the JSON storage column.
func (e *Evaluation) SetScores(scores map[string]float64) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	e.Scores = datatypes.JSON(data)
	return nil
}

// ScoreMap deserializes the stored per-criterion scores.
func (e Evaluation) ScoreMap() map[string]float64 {
	if len(e.Scores) == 0 {
		return map[string]float64{}
	}

	var scores map[string]float64
	if err := json.Unmarshal(e.Scores, &scores); err != nil {
		return map[string]float64{}
	}
	return scores
}

// IsSubmitted reports whether the evaluation has been submitted.
func (e Evaluation) IsSubmitted() bool {
	return e.Status == EvaluationStatusSubmitted
}
