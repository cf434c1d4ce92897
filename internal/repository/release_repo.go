package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// ReleaseRepository persists the per-category release gates.
type ReleaseRepository interface {
	Open(ctx context.Context, category string, releasedBy uint, at time.Time) error
	Get(ctx context.Context, category string) (models.ReleaseState, error)
	List(ctx context.Context) ([]models.ReleaseState, error)
	CloseAll(ctx context.Context) error
}

type releaseRepository struct {
	db *gorm.DB
}

// NewReleaseRepository instantiates a GORM-backed release gate store.
func NewReleaseRepository(db *gorm.DB) ReleaseRepository {
	return &releaseRepository{db: db}
}

func (r *releaseRepository) Open(ctx context.Context, category string, releasedBy uint, at time.Time) error {
	state := models.ReleaseState{
		Category:   category,
		Open:       true,
		ReleasedAt: &at,
		ReleasedBy: &releasedBy,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "category"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"open":        true,
				"released_at": at,
				"released_by": releasedBy,
				"updated_at":  time.Now(),
			}),
		}).
		Create(&state).Error
}

func (r *releaseRepository) Get(ctx context.Context, category string) (models.ReleaseState, error) {
	var state models.ReleaseState
	if err := r.db.WithContext(ctx).
		Where("category = ?", category).
		First(&state).Error; err != nil {
		return models.ReleaseState{}, err
	}

	return state, nil
}

func (r *releaseRepository) List(ctx context.Context) ([]models.ReleaseState, error) {
	var states []models.ReleaseState
	if err := r.db.WithContext(ctx).Order("category ASC").Find(&states).Error; err != nil {
		return nil, err
	}

	return states, nil
}

// CloseAll shuts every gate. Evaluation rows are untouched: results become
// hidden, not destroyed.
func (r *releaseRepository) CloseAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&models.ReleaseState{}).
		Where("open = ?", true).
		Updates(map[string]interface{}{
			"open":       false,
			"updated_at": time.Now(),
		}).Error
}
