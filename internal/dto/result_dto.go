package dto

import "time"

// Result visibility states. Pending and no-evaluations are normal outcomes,
// never errors.
const (
	ResultStatusPending       = "pending"
	ResultStatusNoEvaluations = "no_evaluations"
	ResultStatusReleased      = "released"
)

// TeamResultResponse is the gated aggregate for one team.
type TeamResultResponse struct {
	TeamID            uint               `json:"team_id"`
	TeamName          string             `json:"team_name"`
	Category          string             `json:"category"`
	Status            string             `json:"status"`
	EvaluationCount   int                `json:"evaluation_count"`
	CriterionAverages map[string]float64 `json:"criterion_averages,omitempty"`
	OverallTotal      *float64           `json:"overall_total,omitempty"`
	ReleasedAt        *time.Time         `json:"released_at,omitempty"`
}

// FacultyResultsResponse groups the gated aggregates of the teams a faculty
// member oversees.
type FacultyResultsResponse struct {
	FacultyID uint                 `json:"faculty_id"`
	Teams     []TeamResultResponse `json:"teams"`
}

// ReleaseRequest flips the release gate for one category, or for every known
// category when no category is given.
type ReleaseRequest struct {
	Category string `json:"category" validate:"omitempty,min=1,max=64"`
}

// ReleaseStateResponse reports one category's gate.
type ReleaseStateResponse struct {
	Category   string     `json:"category"`
	Open       bool       `json:"open"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
}
