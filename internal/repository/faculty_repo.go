package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// FacultyRepository defines persistence operations for faculty profiles.
type FacultyRepository interface {
	List(ctx context.Context) ([]models.Faculty, error)
	GetByID(ctx context.Context, id uint) (models.Faculty, error)
	GetByEmail(ctx context.Context, email string) (models.Faculty, error)
	Create(ctx context.Context, faculty *models.Faculty) error
	Update(ctx context.Context, faculty *models.Faculty) error
	Delete(ctx context.Context, id uint) error
	TeamsFor(ctx context.Context, facultyID uint) ([]models.Team, error)
}

type facultyRepository struct {
	db *gorm.DB
}

// NewFacultyRepository instantiates a GORM-backed faculty repository.
func NewFacultyRepository(db *gorm.DB) FacultyRepository {
	return &facultyRepository{db: db}
}

func (r *facultyRepository) List(ctx context.Context) ([]models.Faculty, error) {
	var faculty []models.Faculty
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&faculty).Error; err != nil {
		return nil, err
	}

	return faculty, nil
}

func (r *facultyRepository) GetByID(ctx context.Context, id uint) (models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return models.Faculty{}, err
	}

	return faculty, nil
}

func (r *facultyRepository) GetByEmail(ctx context.Context, email string) (models.Faculty, error) {
	var faculty models.Faculty
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&faculty).Error; err != nil {
		return models.Faculty{}, err
	}

	return faculty, nil
}

func (r *facultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	return r.db.WithContext(ctx).Create(faculty).Error
}

func (r *facultyRepository) Update(ctx context.Context, faculty *models.Faculty) error {
	return r.db.WithContext(ctx).Save(faculty).Error
}

func (r *facultyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Faculty{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *facultyRepository) TeamsFor(ctx context.Context, facultyID uint) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).
		Where("faculty_id = ?", facultyID).
		Order("name ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}
