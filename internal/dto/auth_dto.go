package dto

import "github.com/symposiumhq/symposium-api/internal/models"

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest carries a self-service account registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin faculty team evaluator"`
}

// FacultyProfileResponse summarizes a linked faculty profile.
type FacultyProfileResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Designation    string `json:"designation"`
	Department     string `json:"department"`
	Specialization string `json:"specialization"`
}

// UserResponse is the account payload returned by auth and admin endpoints.
type UserResponse struct {
	ID             uint                    `json:"id"`
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	Role           string                  `json:"role"`
	FacultyProfile *FacultyProfileResponse `json:"faculty_profile,omitempty"`
}

// AuthResponse carries a freshly minted session token plus the account.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse converts a User model into its DTO.
func NewUserResponse(model models.User) UserResponse {
	response := UserResponse{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
		Role:  model.Role,
	}

	if model.FacultyProfile != nil {
		response.FacultyProfile = &FacultyProfileResponse{
			ID:             model.FacultyProfile.ID,
			Name:           model.FacultyProfile.Name,
			Designation:    model.FacultyProfile.Designation,
			Department:     model.FacultyProfile.Department,
			Specialization: model.FacultyProfile.Specialization,
		}
	}

	return response
}

// NewUserResponseSlice converts user models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}

	return responses
}
