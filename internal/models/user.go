package models

import "time"

// Role values accepted for a user account.
const (
	RoleAdmin     = "admin"
	RoleFaculty   = "faculty"
	RoleTeam      = "team"
	RoleEvaluator = "evaluator"
)

// ValidRole reports whether the given role is one of the supported account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleFaculty, RoleTeam, RoleEvaluator:
		return true
	default:
		return false
	}
}

// User is a login account. The same email may hold one account per role,
// which is why uniqueness is declared on the (email, role) pair.
type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Email            string    `gorm:"size:255;not null;uniqueIndex:idx_users_email_role" json:"email"`
	Role             string    `gorm:"size:32;not null;uniqueIndex:idx_users_email_role" json:"role"`
	PasswordHash     string    `gorm:"size:255;not null" json:"-"`
	FacultyProfileID *uint     `json:"faculty_profile_id"`
	FacultyProfile   *Faculty  `gorm:"foreignKey:FacultyProfileID" json:"faculty_profile,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
