package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// EvaluatorRepository defines persistence operations for evaluators.
type EvaluatorRepository interface {
	List(ctx context.Context) ([]models.Evaluator, error)
	GetByID(ctx context.Context, id uint) (models.Evaluator, error)
	GetByEmail(ctx context.Context, email string) (models.Evaluator, error)
	GetByUserID(ctx context.Context, userID uint) (models.Evaluator, error)
	Create(ctx context.Context, evaluator *models.Evaluator) error
	Update(ctx context.Context, evaluator *models.Evaluator) error
}

type evaluatorRepository struct {
	db *gorm.DB
}

// NewEvaluatorRepository instantiates a GORM-backed evaluator repository.
func NewEvaluatorRepository(db *gorm.DB) EvaluatorRepository {
	return &evaluatorRepository{db: db}
}

func (r *evaluatorRepository) List(ctx context.Context) ([]models.Evaluator, error) {
	var evaluators []models.Evaluator
	if err := r.db.WithContext(ctx).
		Preload("Assignments").
		Order("name ASC").
		Find(&evaluators).Error; err != nil {
		return nil, err
	}

	return evaluators, nil
}

func (r *evaluatorRepository) GetByID(ctx context.Context, id uint) (models.Evaluator, error) {
	var evaluator models.Evaluator
	if err := r.db.WithContext(ctx).First(&evaluator, id).Error; err != nil {
		return models.Evaluator{}, err
	}

	return evaluator, nil
}

func (r *evaluatorRepository) GetByEmail(ctx context.Context, email string) (models.Evaluator, error) {
	var evaluator models.Evaluator
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&evaluator).Error; err != nil {
		return models.Evaluator{}, err
	}

	return evaluator, nil
}

func (r *evaluatorRepository) GetByUserID(ctx context.Context, userID uint) (models.Evaluator, error) {
	var evaluator models.Evaluator
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&evaluator).Error; err != nil {
		return models.Evaluator{}, err
	}

	return evaluator, nil
}

func (r *evaluatorRepository) Create(ctx context.Context, evaluator *models.Evaluator) error {
	return r.db.WithContext(ctx).Create(evaluator).Error
}

func (r *evaluatorRepository) Update(ctx context.Context, evaluator *models.Evaluator) error {
	return r.db.WithContext(ctx).Save(evaluator).Error
}
