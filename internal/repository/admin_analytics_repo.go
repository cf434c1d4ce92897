package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// DirectoryCounts summarizes directory sizes for the admin dashboard.
type DirectoryCounts struct {
	Teams      int64
	Faculty    int64
	Evaluators int64
	Users      int64
}

// AdminAnalyticsRepository supplies data for the administrator dashboard.
type AdminAnalyticsRepository interface {
	Counts(ctx context.Context) (DirectoryCounts, error)
	CountEvaluations(ctx context.Context) (int64, error)
	CountEvaluationsSince(ctx context.Context, since time.Time) (int64, error)
	CountActiveLaunches(ctx context.Context) (int64, error)
}

type adminAnalyticsRepository struct {
	db *gorm.DB
}

// NewAdminAnalyticsRepository constructs the analytics repository.
func NewAdminAnalyticsRepository(db *gorm.DB) AdminAnalyticsRepository {
	return &adminAnalyticsRepository{db: db}
}

func (r *adminAnalyticsRepository) Counts(ctx context.Context) (DirectoryCounts, error) {
	var counts DirectoryCounts

	if err := r.db.WithContext(ctx).Model(&models.Team{}).Count(&counts.Teams).Error; err != nil {
		return DirectoryCounts{}, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Faculty{}).Count(&counts.Faculty).Error; err != nil {
		return DirectoryCounts{}, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Evaluator{}).Count(&counts.Evaluators).Error; err != nil {
		return DirectoryCounts{}, err
	}
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&counts.Users).Error; err != nil {
		return DirectoryCounts{}, err
	}

	return counts, nil
}

func (r *adminAnalyticsRepository) CountEvaluations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Evaluation{}).Count(&count).Error
	return count, err
}

func (r *adminAnalyticsRepository) CountEvaluationsSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Evaluation{}).
		Where("updated_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *adminAnalyticsRepository) CountActiveLaunches(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Launch{}).
		Where("active = ?", true).
		Count(&count).Error
	return count, err
}
