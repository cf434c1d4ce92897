package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

// AssignmentService maintains the evaluator-team registry.
type AssignmentService interface {
	Assign(ctx context.Context, evaluatorID uint, payload dto.AssignTeamsRequest) (dto.EvaluatorResponse, error)
	Remove(ctx context.Context, evaluatorID, teamID uint) error
	TeamsFor(ctx context.Context, evaluatorID uint) ([]dto.TeamLite, error)
	EvaluatorsFor(ctx context.Context, teamID uint) ([]dto.EvaluatorLite, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	evaluators  repository.EvaluatorRepository
	teams       repository.TeamRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssignmentService constructs the registry service.
func NewAssignmentService(assignments repository.AssignmentRepository, evaluators repository.EvaluatorRepository, teams repository.TeamRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		evaluators:  evaluators,
		teams:       teams,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

// Assign extends the evaluator's team set. Every referenced team must exist;
// pairs that are already registered stay untouched.
func (s *assignmentService) Assign(ctx context.Context, evaluatorID uint, payload dto.AssignTeamsRequest) (dto.EvaluatorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluatorResponse{}, err
	}

	if _, err := s.evaluators.GetByID(ctx, evaluatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluatorResponse{}, ErrEvaluatorNotFound
		}
		return dto.EvaluatorResponse{}, err
	}

	for _, teamID := range payload.TeamIDs {
		if _, err := s.teams.GetByID(ctx, teamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.EvaluatorResponse{}, ErrTeamNotFound
			}
			return dto.EvaluatorResponse{}, err
		}
	}

	if err := s.assignments.Assign(ctx, evaluatorID, payload.TeamIDs); err != nil {
		return dto.EvaluatorResponse{}, err
	}

	s.logger.Info().Uint("evaluator_id", evaluatorID).Ints("team_ids", toInts(payload.TeamIDs)).Msg("teams assigned")

	evaluator, err := s.evaluators.GetByID(ctx, evaluatorID)
	if err != nil {
		return dto.EvaluatorResponse{}, err
	}

	teams, err := s.assignments.TeamsFor(ctx, evaluatorID)
	if err != nil {
		return dto.EvaluatorResponse{}, err
	}

	response := dto.NewEvaluatorResponse(evaluator)
	response.TeamIDs = make([]uint, 0, len(teams))
	for _, team := range teams {
		response.TeamIDs = append(response.TeamIDs, team.ID)
	}

	return response, nil
}

// Remove drops one pairing. Evaluations already submitted for the pair are
// historical data and stay retrievable through the admin endpoints.
func (s *assignmentService) Remove(ctx context.Context, evaluatorID, teamID uint) error {
	if err := s.assignments.Remove(ctx, evaluatorID, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAssigned
		}
		return err
	}

	s.logger.Info().Uint("evaluator_id", evaluatorID).Uint("team_id", teamID).Msg("assignment removed")
	return nil
}

func (s *assignmentService) TeamsFor(ctx context.Context, evaluatorID uint) ([]dto.TeamLite, error) {
	teams, err := s.assignments.TeamsFor(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TeamLite, 0, len(teams))
	for _, team := range teams {
		result = append(result, dto.NewTeamLite(team))
	}

	return result, nil
}

func (s *assignmentService) EvaluatorsFor(ctx context.Context, teamID uint) ([]dto.EvaluatorLite, error) {
	evaluators, err := s.assignments.EvaluatorsFor(ctx, teamID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EvaluatorLite, 0, len(evaluators))
	for _, evaluator := range evaluators {
		result = append(result, dto.EvaluatorLite{
			ID:           evaluator.ID,
			Name:         evaluator.Name,
			Organization: evaluator.Organization,
		})
	}

	return result, nil
}

func toInts(ids []uint) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		out = append(out, int(id))
	}
	return out
}
