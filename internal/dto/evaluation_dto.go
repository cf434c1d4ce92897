package dto

import (
	"time"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// EvaluationSubmitRequest is the payload for a first or repeated submission.
type EvaluationSubmitRequest struct {
	TeamID   uint               `json:"teamId" validate:"required,gt=0"`
	Scores   map[string]float64 `json:"scores" validate:"required,min=1"`
	Comments string             `json:"comments" validate:"omitempty,max=4000"`
}

// EvaluationUpdateRequest is the payload for updating an existing evaluation.
type EvaluationUpdateRequest struct {
	Scores   map[string]float64 `json:"scores" validate:"required,min=1"`
	Comments string             `json:"comments" validate:"omitempty,max=4000"`
}

// TeamLite summarizes a team inside evaluation payloads.
type TeamLite struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	ProjectTitle string `json:"project_title"`
}

// EvaluatorLite summarizes an evaluator inside evaluation payloads.
type EvaluatorLite struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
}

// EvaluationResponse is the evaluation payload returned to API clients.
type EvaluationResponse struct {
	ID          uint               `json:"id"`
	TeamID      uint               `json:"team_id"`
	EvaluatorID uint               `json:"evaluator_id"`
	Scores      map[string]float64 `json:"scores"`
	Comments    string             `json:"comments"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Team        TeamLite           `json:"team"`
	Evaluator   EvaluatorLite      `json:"evaluator"`
}

// AssignedTeamResponse lists a team from the evaluator's assigned set along
// with the state of the evaluator's own evaluation for it.
type AssignedTeamResponse struct {
	Team      TeamLite `json:"team"`
	Evaluated bool     `json:"evaluated"`
}

// TeamForEvaluationResponse is the detail view an evaluator opens before
// scoring: the team plus their existing evaluation, when one exists.
type TeamForEvaluationResponse struct {
	Team       TeamLite            `json:"team"`
	LeaderName string              `json:"leader_name"`
	Faculty    string              `json:"faculty,omitempty"`
	Evaluation *EvaluationResponse `json:"evaluation,omitempty"`
}

// TeamEvaluationSummary is one row of the admin overview.
type TeamEvaluationSummary struct {
	TeamID             uint     `json:"team_id"`
	TeamName           string   `json:"team_name"`
	Category           string   `json:"category"`
	AssignedEvaluators int64    `json:"assigned_evaluators"`
	SubmittedCount     int64    `json:"submitted_count"`
	AverageTotal       *float64 `json:"average_total"`
}

// OverviewResponse is the cross-team summary for administrators.
type OverviewResponse struct {
	Teams            []TeamEvaluationSummary `json:"teams"`
	TotalEvaluations int64                   `json:"total_evaluations"`
}

// NewEvaluationResponse converts an Evaluation model into a DTO.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	response := EvaluationResponse{
		ID:          model.ID,
		TeamID:      model.TeamID,
		EvaluatorID: model.EvaluatorID,
		Scores:      model.ScoreMap(),
		Comments:    model.Comments,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	if model.Team.ID != 0 {
		response.Team = NewTeamLite(model.Team)
	}

	if model.Evaluator.ID != 0 {
		response.Evaluator = EvaluatorLite{
			ID:           model.Evaluator.ID,
			Name:         model.Evaluator.Name,
			Organization: model.Evaluator.Organization,
		}
	}

	return response
}

// NewEvaluationResponseSlice converts evaluation models into DTOs.
func NewEvaluationResponseSlice(evaluations []models.Evaluation) []EvaluationResponse {
	responses := make([]EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, NewEvaluationResponse(evaluation))
	}

	return responses
}

// NewTeamLite converts a Team model into its summary form.
func NewTeamLite(model models.Team) TeamLite {
	return TeamLite{
		ID:           model.ID,
		Name:         model.Name,
		Category:     model.ResultCategory(),
		ProjectTitle: model.ProjectTitle,
	}
}
