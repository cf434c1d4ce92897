package models

import "time"

// DefaultCategory is used when a team was registered without a result category.
const DefaultCategory = "general"

// Team is a participating project team. The credential pair is issued by the
// platform for the venue kiosk login and is separate from the account password
// held by the credential service.
type Team struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	Name               string       `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Category           string       `gorm:"size:64;not null;default:general" json:"category"`
	ProjectTitle       string       `gorm:"size:255" json:"project_title"`
	LeaderName         string       `gorm:"size:255;not null" json:"leader_name"`
	LeaderEmail        string       `gorm:"size:255;not null" json:"leader_email"`
	LeaderPhone        string       `gorm:"size:32" json:"leader_phone"`
	CredentialUsername string       `gorm:"size:64" json:"credential_username"`
	CredentialPassword string       `gorm:"size:64" json:"-"`
	FacultyID          *uint        `json:"faculty_id"`
	Faculty            *Faculty     `gorm:"foreignKey:FacultyID" json:"faculty,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
	Evaluations        []Evaluation `gorm:"foreignKey:TeamID" json:"evaluations,omitempty"`
}

// ResultCategory returns the category the release gate is keyed on.
func (t Team) ResultCategory() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}
