package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// LaunchRepository persists display assets and their launches.
type LaunchRepository interface {
	ListPosters(ctx context.Context) ([]models.Poster, error)
	GetPoster(ctx context.Context, id uint) (models.Poster, error)
	CreatePoster(ctx context.Context, poster *models.Poster) error
	ListVideos(ctx context.Context) ([]models.PromotionVideo, error)
	GetVideo(ctx context.Context, id uint) (models.PromotionVideo, error)
	CreateVideo(ctx context.Context, video *models.PromotionVideo) error

	ListLaunches(ctx context.Context, kind string) ([]models.Launch, error)
	GetLaunch(ctx context.Context, id uint) (models.Launch, error)
	CreateLaunch(ctx context.Context, launch *models.Launch) error
	UpdateLaunch(ctx context.Context, launch *models.Launch) error
	DeleteLaunch(ctx context.Context, id uint) error
	DeleteLaunchesByKind(ctx context.Context, kind string) (int64, error)
	DeleteAllLaunches(ctx context.Context) (int64, error)
}

type launchRepository struct {
	db *gorm.DB
}

// NewLaunchRepository instantiates a GORM-backed launch store.
func NewLaunchRepository(db *gorm.DB) LaunchRepository {
	return &launchRepository{db: db}
}

func (r *launchRepository) ListPosters(ctx context.Context) ([]models.Poster, error) {
	var posters []models.Poster
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posters).Error; err != nil {
		return nil, err
	}
	return posters, nil
}

func (r *launchRepository) GetPoster(ctx context.Context, id uint) (models.Poster, error) {
	var poster models.Poster
	if err := r.db.WithContext(ctx).First(&poster, id).Error; err != nil {
		return models.Poster{}, err
	}
	return poster, nil
}

func (r *launchRepository) CreatePoster(ctx context.Context, poster *models.Poster) error {
	return r.db.WithContext(ctx).Create(poster).Error
}

func (r *launchRepository) ListVideos(ctx context.Context) ([]models.PromotionVideo, error) {
	var videos []models.PromotionVideo
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *launchRepository) GetVideo(ctx context.Context, id uint) (models.PromotionVideo, error) {
	var video models.PromotionVideo
	if err := r.db.WithContext(ctx).First(&video, id).Error; err != nil {
		return models.PromotionVideo{}, err
	}
	return video, nil
}

func (r *launchRepository) CreateVideo(ctx context.Context, video *models.PromotionVideo) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *launchRepository) ListLaunches(ctx context.Context, kind string) ([]models.Launch, error) {
	query := r.db.WithContext(ctx).Model(&models.Launch{}).Where("active = ?", true)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var launches []models.Launch
	if err := query.Order("created_at DESC").Find(&launches).Error; err != nil {
		return nil, err
	}
	return launches, nil
}

func (r *launchRepository) GetLaunch(ctx context.Context, id uint) (models.Launch, error) {
	var launch models.Launch
	if err := r.db.WithContext(ctx).First(&launch, id).Error; err != nil {
		return models.Launch{}, err
	}
	return launch, nil
}

func (r *launchRepository) CreateLaunch(ctx context.Context, launch *models.Launch) error {
	return r.db.WithContext(ctx).Create(launch).Error
}

func (r *launchRepository) UpdateLaunch(ctx context.Context, launch *models.Launch) error {
	return r.db.WithContext(ctx).Save(launch).Error
}

func (r *launchRepository) DeleteLaunch(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Launch{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *launchRepository) DeleteLaunchesByKind(ctx context.Context, kind string) (int64, error) {
	result := r.db.WithContext(ctx).Where("kind = ?", kind).Delete(&models.Launch{})
	return result.RowsAffected, result.Error
}

func (r *launchRepository) DeleteAllLaunches(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Launch{})
	return result.RowsAffected, result.Error
}
