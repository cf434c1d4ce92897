package models

import "time"

// ReleaseState is the per-category gate controlling whether aggregated results
// are visible to teams and faculty. Only admin actions mutate it. Closing a
// gate hides results; it never touches the underlying evaluation rows.
type ReleaseState struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Category   string     `gorm:"size:64;uniqueIndex;not null" json:"category"`
	Open       bool       `gorm:"not null;default:false" json:"open"`
	ReleasedAt *time.Time `json:"released_at"`
	ReleasedBy *uint      `json:"released_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
