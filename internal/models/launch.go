package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Launch asset kinds.
const (
	LaunchKindPoster = "poster"
	LaunchKindVideo  = "video"
)

// Poster is an uploaded display asset shown on the venue screens when launched.
type Poster struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	FileURL   string    `gorm:"size:512;not null" json:"file_url"`
	TeamID    *uint     `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PromotionVideo is an uploaded video asset for the launch screens.
type PromotionVideo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	FileURL   string    `gorm:"size:512;not null" json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Launch activates a poster or video on the venue displays. At most one active
// launch exists per asset; stopping a launch deactivates it without deleting
// the asset.
type Launch struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Kind      string         `gorm:"size:16;not null;uniqueIndex:idx_launches_asset" json:"kind"`
	AssetID   uint           `gorm:"not null;uniqueIndex:idx_launches_asset" json:"asset_id"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	Settings  datatypes.JSON `gorm:"type:json" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SetSettings serializes display settings into the JSON storage column.
func (l *Launch) SetSettings(settings map[string]any) error {
	if settings == nil {
		settings = map[string]any{}
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	l.Settings = datatypes.JSON(data)
	return nil
}

// SettingsMap deserializes the stored display settings.
func (l Launch) SettingsMap() map[string]any {
	if len(l.Settings) == 0 {
		return map[string]any{}
	}
	var settings map[string]any
	if err := json.Unmarshal(l.Settings, &settings); err != nil {
		return map[string]any{}
	}
	return settings
}
