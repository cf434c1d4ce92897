package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// TeamFilter narrows team listings.
type TeamFilter struct {
	Category string
	Search   string
}

// TeamRepository defines persistence operations for teams.
type TeamRepository interface {
	List(ctx context.Context, filter TeamFilter) ([]models.Team, error)
	GetByID(ctx context.Context, id uint) (models.Team, error)
	GetByLeaderEmail(ctx context.Context, email string) (models.Team, error)
	Create(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]string, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository instantiates a GORM-backed team repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) List(ctx context.Context, filter TeamFilter) ([]models.Team, error) {
	query := r.db.WithContext(ctx).Model(&models.Team{}).Preload("Faculty")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(filter.Search)) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(project_title) LIKE ?", pattern, pattern)
	}

	var teams []models.Team
	if err := query.Order("name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id uint) (models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Preload("Faculty").First(&team, id).Error; err != nil {
		return models.Team{}, err
	}

	return team, nil
}

func (r *teamRepository) GetByLeaderEmail(ctx context.Context, email string) (models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).
		Where("leader_email = ?", email).
		First(&team).Error; err != nil {
		return models.Team{}, err
	}

	return team, nil
}

func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

func (r *teamRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Team{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *teamRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).Model(&models.Team{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}

	return categories, nil
}
