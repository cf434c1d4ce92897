package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// EvaluationFilter narrows evaluation listings.
type EvaluationFilter struct {
	TeamID      *uint
	EvaluatorID *uint
	Status      *string
}

// EvaluationRepository holds the evaluation records, one per (team, evaluator)
// pair.
type EvaluationRepository interface {
	List(ctx context.Context, filter EvaluationFilter) ([]models.Evaluation, error)
	GetByID(ctx context.Context, id uint) (models.Evaluation, error)
	GetByPair(ctx context.Context, teamID, evaluatorID uint) (models.Evaluation, error)
	Upsert(ctx context.Context, evaluation *models.Evaluation) error
	Update(ctx context.Context, evaluation *models.Evaluation) error
	CountByTeam(ctx context.Context, teamID uint) (int64, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository instantiates a GORM-backed evaluation store.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Evaluation{}).
		Preload("Team").
		Preload("Evaluator")
}

func (r *evaluationRepository) List(ctx context.Context, filter EvaluationFilter) ([]models.Evaluation, error) {
	query := r.baseQuery(ctx)

	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}

	if filter.EvaluatorID != nil {
		query = query.Where("evaluator_id = ?", *filter.EvaluatorID)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var evaluations []models.Evaluation
	if err := query.Order("updated_at DESC").Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return evaluations, nil
}

func (r *evaluationRepository) GetByID(ctx context.Context, id uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.baseQuery(ctx).First(&evaluation, id).Error; err != nil {
		return models.Evaluation{}, err
	}

	return evaluation, nil
}

func (r *evaluationRepository) GetByPair(ctx context.Context, teamID, evaluatorID uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.baseQuery(ctx).
		Where("team_id = ?", teamID).
		Where("evaluator_id = ?", evaluatorID).
		First(&evaluation).Error; err != nil {
		return models.Evaluation{}, err
	}

	return evaluation, nil
}

// Upsert writes the evaluation through the unique (team_id, evaluator_id) key.
// Racing submits for the same pair serialize inside the database and collapse
// to a single row holding the last writer's payload.
func (r *evaluationRepository) Upsert(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "team_id"}, {Name: "evaluator_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"scores":     evaluation.Scores,
				"comments":   evaluation.Comments,
				"status":     evaluation.Status,
				"updated_at": time.Now(),
			}),
		}).
		Create(evaluation).Error
}

func (r *evaluationRepository) Update(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Save(evaluation).Error
}

func (r *evaluationRepository) CountByTeam(ctx context.Context, teamID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Evaluation{}).
		Where("team_id = ?", teamID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
