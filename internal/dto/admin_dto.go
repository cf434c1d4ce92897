package dto

import (
	"time"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// TeamCreateRequest registers a team and issues its kiosk credential pair.
type TeamCreateRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Category     string `json:"category" validate:"omitempty,min=1,max=64"`
	ProjectTitle string `json:"project_title" validate:"omitempty,max=255"`
	LeaderName   string `json:"leader_name" validate:"required,min=2,max=255"`
	LeaderEmail  string `json:"leader_email" validate:"required,email"`
	LeaderPhone  string `json:"leader_phone" validate:"omitempty,max=32"`
	FacultyID    *uint  `json:"faculty_id" validate:"omitempty,gt=0"`
}

// TeamUpdateRequest mutates an existing team.
type TeamUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=255"`
	Category     *string `json:"category" validate:"omitempty,min=1,max=64"`
	ProjectTitle *string `json:"project_title" validate:"omitempty,max=255"`
	LeaderName   *string `json:"leader_name" validate:"omitempty,min=2,max=255"`
	LeaderEmail  *string `json:"leader_email" validate:"omitempty,email"`
	LeaderPhone  *string `json:"leader_phone" validate:"omitempty,max=32"`
	FacultyID    *uint   `json:"faculty_id" validate:"omitempty,gt=0"`
}

// TeamResponse is the team payload returned to administrators.
type TeamResponse struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	ProjectTitle       string    `json:"project_title"`
	LeaderName         string    `json:"leader_name"`
	LeaderEmail        string    `json:"leader_email"`
	LeaderPhone        string    `json:"leader_phone"`
	CredentialUsername string    `json:"credential_username,omitempty"`
	FacultyName        string    `json:"faculty_name,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FacultyCreateRequest registers a faculty profile.
type FacultyCreateRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=255"`
	Email          string `json:"email" validate:"required,email"`
	Designation    string `json:"designation" validate:"omitempty,max=255"`
	Department     string `json:"department" validate:"omitempty,max=255"`
	Specialization string `json:"specialization" validate:"omitempty,max=255"`
}

// FacultyUpdateRequest mutates a faculty profile.
type FacultyUpdateRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=255"`
	Designation    *string `json:"designation" validate:"omitempty,max=255"`
	Department     *string `json:"department" validate:"omitempty,max=255"`
	Specialization *string `json:"specialization" validate:"omitempty,max=255"`
}

// FacultyResponse is the faculty payload returned to administrators.
type FacultyResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Designation    string    `json:"designation"`
	Department     string    `json:"department"`
	Specialization string    `json:"specialization"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EvaluatorCreateRequest registers an evaluator.
type EvaluatorCreateRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Organization string `json:"organization" validate:"omitempty,max=255"`
}

// EvaluatorResponse is the evaluator payload returned to administrators.
type EvaluatorResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Organization string    `json:"organization"`
	TeamIDs      []uint    `json:"team_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AssignTeamsRequest extends an evaluator's assigned team set.
type AssignTeamsRequest struct {
	TeamIDs []uint `json:"teamIds" validate:"required,min=1,dive,gt=0"`
}

// UserUpdateRequest mutates a login account.
type UserUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=255"`
	Role *string `json:"role" validate:"omitempty,oneof=admin faculty team evaluator"`
}

// DashboardResponse summarizes the event for administrators.
type DashboardResponse struct {
	Teams              int64 `json:"teams"`
	Faculty            int64 `json:"faculty"`
	Evaluators         int64 `json:"evaluators"`
	Users              int64 `json:"users"`
	Evaluations        int64 `json:"evaluations"`
	EvaluationsLast24h int64 `json:"evaluations_last_24h"`
	ActiveLaunches     int64 `json:"active_launches"`
}

// NewTeamResponse converts a Team model into a DTO.
func NewTeamResponse(model models.Team) TeamResponse {
	response := TeamResponse{
		ID:                 model.ID,
		Name:               model.Name,
		Category:           model.ResultCategory(),
		ProjectTitle:       model.ProjectTitle,
		LeaderName:         model.LeaderName,
		LeaderEmail:        model.LeaderEmail,
		LeaderPhone:        model.LeaderPhone,
		CredentialUsername: model.CredentialUsername,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}

	if model.Faculty != nil {
		response.FacultyName = model.Faculty.Name
	}

	return response
}

// NewTeamResponseSlice converts team models into DTOs.
func NewTeamResponseSlice(teams []models.Team) []TeamResponse {
	responses := make([]TeamResponse, 0, len(teams))
	for _, team := range teams {
		responses = append(responses, NewTeamResponse(team))
	}

	return responses
}

// NewFacultyResponse converts a Faculty model into a DTO.
func NewFacultyResponse(model models.Faculty) FacultyResponse {
	return FacultyResponse{
		ID:             model.ID,
		Name:           model.Name,
		Email:          model.Email,
		Designation:    model.Designation,
		Department:     model.Department,
		Specialization: model.Specialization,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// NewFacultyResponseSlice converts faculty models into DTOs.
func NewFacultyResponseSlice(faculty []models.Faculty) []FacultyResponse {
	responses := make([]FacultyResponse, 0, len(faculty))
	for _, profile := range faculty {
		responses = append(responses, NewFacultyResponse(profile))
	}

	return responses
}

// NewEvaluatorResponse converts an Evaluator model into a DTO.
func NewEvaluatorResponse(model models.Evaluator) EvaluatorResponse {
	teamIDs := make([]uint, 0, len(model.Assignments))
	for _, assignment := range model.Assignments {
		teamIDs = append(teamIDs, assignment.TeamID)
	}

	return EvaluatorResponse{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		Organization: model.Organization,
		TeamIDs:      teamIDs,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NewEvaluatorResponseSlice converts evaluator models into DTOs.
func NewEvaluatorResponseSlice(evaluators []models.Evaluator) []EvaluatorResponse {
	responses := make([]EvaluatorResponse, 0, len(evaluators))
	for _, evaluator := range evaluators {
		responses = append(responses, NewEvaluatorResponse(evaluator))
	}

	return responses
}
