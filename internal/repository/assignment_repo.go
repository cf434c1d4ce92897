package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// AssignmentRepository is the registry mapping evaluators to the teams they
// must score.
type AssignmentRepository interface {
	Assign(ctx context.Context, evaluatorID uint, teamIDs []uint) error
	Remove(ctx context.Context, evaluatorID, teamID uint) error
	TeamsFor(ctx context.Context, evaluatorID uint) ([]models.Team, error)
	EvaluatorsFor(ctx context.Context, teamID uint) ([]models.Evaluator, error)
	Exists(ctx context.Context, evaluatorID, teamID uint) (bool, error)
	CountForTeam(ctx context.Context, teamID uint) (int64, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed assignment registry.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

// Assign extends the evaluator's team set. Pairs that already exist are left
// untouched, which makes repeated assignment idempotent.
func (r *assignmentRepository) Assign(ctx context.Context, evaluatorID uint, teamIDs []uint) error {
	if len(teamIDs) == 0 {
		return nil
	}

	rows := make([]models.Assignment, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		rows = append(rows, models.Assignment{EvaluatorID: evaluatorID, TeamID: teamID})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "evaluator_id"}, {Name: "team_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

// Remove drops a single pairing. Evaluation records for the pair are kept.
func (r *assignmentRepository) Remove(ctx context.Context, evaluatorID, teamID uint) error {
	result := r.db.WithContext(ctx).
		Where("evaluator_id = ?", evaluatorID).
		Where("team_id = ?", teamID).
		Delete(&models.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepository) TeamsFor(ctx context.Context, evaluatorID uint) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).Model(&models.Team{}).
		Joins("JOIN assignments ON assignments.team_id = teams.id").
		Where("assignments.evaluator_id = ?", evaluatorID).
		Order("teams.name ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *assignmentRepository) EvaluatorsFor(ctx context.Context, teamID uint) ([]models.Evaluator, error) {
	var evaluators []models.Evaluator
	if err := r.db.WithContext(ctx).Model(&models.Evaluator{}).
		Joins("JOIN assignments ON assignments.evaluator_id = evaluators.id").
		Where("assignments.team_id = ?", teamID).
		Order("evaluators.name ASC").
		Find(&evaluators).Error; err != nil {
		return nil, err
	}

	return evaluators, nil
}

func (r *assignmentRepository) Exists(ctx context.Context, evaluatorID, teamID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("evaluator_id = ?", evaluatorID).
		Where("team_id = ?", teamID).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *assignmentRepository) CountForTeam(ctx context.Context, teamID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("team_id = ?", teamID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
