package dto

import (
	"time"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// Launch event types pushed to display clients.
const (
	LaunchEventLaunched = "launched"
	LaunchEventUpdated  = "updated"
	LaunchEventStopped  = "stopped"
	LaunchEventReset    = "reset"
)

// PosterResponse is an uploaded poster asset.
type PosterResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_url"`
	TeamID    *uint     `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// VideoResponse is an uploaded promotion video asset.
type VideoResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

// AssetUploadRequest carries the metadata for a poster or video upload.
type AssetUploadRequest struct {
	Title  string `json:"title" form:"title" validate:"required,min=2,max=255"`
	TeamID *uint  `json:"team_id" form:"team_id" validate:"omitempty,gt=0"`
}

// LaunchRequest activates an asset on the venue displays.
type LaunchRequest struct {
	AssetID  uint           `json:"assetId" validate:"required,gt=0"`
	Settings map[string]any `json:"settings" validate:"omitempty"`
}

// LaunchUpdateRequest mutates an active launch's display settings.
type LaunchUpdateRequest struct {
	Settings map[string]any `json:"settings" validate:"required"`
}

// LaunchResponse is an active launch as returned to clients.
type LaunchResponse struct {
	ID        uint           `json:"id"`
	Kind      string         `json:"kind"`
	AssetID   uint           `json:"asset_id"`
	Title     string         `json:"title"`
	FileURL   string         `json:"file_url"`
	Settings  map[string]any `json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// LaunchEvent is pushed over the live stream when a launch changes.
type LaunchEvent struct {
	Type     string         `json:"type"`
	Kind     string         `json:"kind,omitempty"`
	LaunchID uint           `json:"launch_id,omitempty"`
	AssetID  uint           `json:"asset_id,omitempty"`
	Title    string         `json:"title,omitempty"`
	FileURL  string         `json:"file_url,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
	SentAt   time.Time      `json:"sent_at"`
}

// NewPosterResponse converts a Poster model into a DTO.
func NewPosterResponse(model models.Poster) PosterResponse {
	return PosterResponse{
		ID:        model.ID,
		Title:     model.Title,
		FileURL:   model.FileURL,
		TeamID:    model.TeamID,
		CreatedAt: model.CreatedAt,
	}
}

// NewVideoResponse converts a PromotionVideo model into a DTO.
func NewVideoResponse(model models.PromotionVideo) VideoResponse {
	return VideoResponse{
		ID:        model.ID,
		Title:     model.Title,
		FileURL:   model.FileURL,
		CreatedAt: model.CreatedAt,
	}
}
