package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/criteria"
	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/observability"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

// EvaluationService orchestrates the evaluator-facing scoring workflow.
type EvaluationService interface {
	EvaluatorForUser(ctx context.Context, userID uint) (models.Evaluator, error)
	AssignedTeams(ctx context.Context, evaluatorID uint) ([]dto.AssignedTeamResponse, error)
	TeamForEvaluation(ctx context.Context, evaluatorID, teamID uint) (dto.TeamForEvaluationResponse, error)
	Submit(ctx context.Context, evaluatorID uint, payload dto.EvaluationSubmitRequest) (dto.EvaluationResponse, error)
	Update(ctx context.Context, evaluationID, evaluatorID uint, payload dto.EvaluationUpdateRequest) (dto.EvaluationResponse, error)
	List(ctx context.Context, filter repository.EvaluationFilter) ([]dto.EvaluationResponse, error)
}

type evaluationService struct {
	evaluations repository.EvaluationRepository
	assignments repository.AssignmentRepository
	evaluators  repository.EvaluatorRepository
	teams       repository.TeamRepository
	criteria    criteria.Set
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	tracer      trace.Tracer
	logger      zerolog.Logger
}

// NewEvaluationService constructs the evaluation workflow service.
func NewEvaluationService(evaluations repository.EvaluationRepository, assignments repository.AssignmentRepository, evaluators repository.EvaluatorRepository, teams repository.TeamRepository, criteriaSet criteria.Set, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		evaluations: evaluations,
		assignments: assignments,
		evaluators:  evaluators,
		teams:       teams,
		criteria:    criteriaSet,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		tracer:      otel.Tracer("github.com/symposiumhq/symposium-api/internal/service/evaluation"),
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
	}
}

func (s *evaluationService) EvaluatorForUser(ctx context.Context, userID uint) (models.Evaluator, error) {
	evaluator, err := s.evaluators.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Evaluator{}, ErrEvaluatorNotFound
		}
		return models.Evaluator{}, err
	}

	return evaluator, nil
}

func (s *evaluationService) AssignedTeams(ctx context.Context, evaluatorID uint) ([]dto.AssignedTeamResponse, error) {
	teams, err := s.assignments.TeamsFor(ctx, evaluatorID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AssignedTeamResponse, 0, len(teams))
	for _, team := range teams {
		evaluated := false
		if _, err := s.evaluations.GetByPair(ctx, team.ID, evaluatorID); err == nil {
			evaluated = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		responses = append(responses, dto.AssignedTeamResponse{
			Team:      dto.NewTeamLite(team),
			Evaluated: evaluated,
		})
	}

	return responses, nil
}

func (s *evaluationService) TeamForEvaluation(ctx context.Context, evaluatorID, teamID uint) (dto.TeamForEvaluationResponse, error) {
	assigned, err := s.assignments.Exists(ctx, evaluatorID, teamID)
	if err != nil {
		return dto.TeamForEvaluationResponse{}, err
	}
	if !assigned {
		return dto.TeamForEvaluationResponse{}, ErrNotAssigned
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeamForEvaluationResponse{}, ErrTeamNotFound
		}
		return dto.TeamForEvaluationResponse{}, err
	}

	response := dto.TeamForEvaluationResponse{
		Team:       dto.NewTeamLite(team),
		LeaderName: team.LeaderName,
	}
	if team.Faculty != nil {
		response.Faculty = team.Faculty.Name
	}

	evaluation, err := s.evaluations.GetByPair(ctx, teamID, evaluatorID)
	switch {
	case err == nil:
		existing := dto.NewEvaluationResponse(evaluation)
		response.Evaluation = &existing
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first visit, nothing submitted yet
	default:
		return dto.TeamForEvaluationResponse{}, err
	}

	return response, nil
}

// Submit records the evaluator's scores for an assigned team. The first call
// creates the record; later calls overwrite scores and comments in place.
// Either way the store holds exactly one submitted row per pair afterwards.
func (s *evaluationService) Submit(ctx context.Context, evaluatorID uint, payload dto.EvaluationSubmitRequest) (dto.EvaluationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.submit")
	span.SetAttributes(
		attribute.Int64("evaluation.team_id", int64(payload.TeamID)),
		attribute.Int64("evaluation.evaluator_id", int64(evaluatorID)),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.EvaluationResponse{}, err
	}

	if err := s.validateScores(payload.Scores); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scores_rejected")
		observability.EvaluationSubmissions().WithLabelValues("rejected").Inc()
		return dto.EvaluationResponse{}, err
	}

	assigned, err := s.assignments.Exists(ctx, evaluatorID, payload.TeamID)
	if err != nil {
		span.RecordError(err)
		return dto.EvaluationResponse{}, err
	}
	if !assigned {
		span.SetStatus(codes.Error, "not_assigned")
		return dto.EvaluationResponse{}, ErrNotAssigned
	}

	evaluation := models.Evaluation{
		TeamID:      payload.TeamID,
		EvaluatorID: evaluatorID,
		Comments:    s.sanitizer.Sanitize(strings.TrimSpace(payload.Comments)),
		Status:      models.EvaluationStatusSubmitted,
	}
	if err := evaluation.SetScores(payload.Scores); err != nil {
		return dto.EvaluationResponse{}, err
	}

	if err := s.evaluations.Upsert(ctx, &evaluation); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert_failed")
		return dto.EvaluationResponse{}, err
	}

	stored, err := s.evaluations.GetByPair(ctx, payload.TeamID, evaluatorID)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	s.logger.Info().
		Uint("team_id", payload.TeamID).
		Uint("evaluator_id", evaluatorID).
		Uint("evaluation_id", stored.ID).
		Msg("evaluation submitted")

	observability.EvaluationSubmissions().WithLabelValues("accepted").Inc()

	return dto.NewEvaluationResponse(stored), nil
}

// Update mutates an existing evaluation. Only the authoring evaluator may
// touch it; the record stays in the submitted state.
func (s *evaluationService) Update(ctx context.Context, evaluationID, evaluatorID uint, payload dto.EvaluationUpdateRequest) (dto.EvaluationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluationResponse{}, err
	}

	if err := s.validateScores(payload.Scores); err != nil {
		return dto.EvaluationResponse{}, err
	}

	evaluation, err := s.evaluations.GetByID(ctx, evaluationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrEvaluationNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	if evaluation.EvaluatorID != evaluatorID {
		return dto.EvaluationResponse{}, ErrNotOwner
	}

	if err := evaluation.SetScores(payload.Scores); err != nil {
		return dto.EvaluationResponse{}, err
	}
	evaluation.Comments = s.sanitizer.Sanitize(strings.TrimSpace(payload.Comments))
	evaluation.Status = models.EvaluationStatusSubmitted

	if err := s.evaluations.Update(ctx, &evaluation); err != nil {
		return dto.EvaluationResponse{}, err
	}

	updated, err := s.evaluations.GetByID(ctx, evaluation.ID)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	s.logger.Info().Uint("evaluation_id", evaluation.ID).Uint("evaluator_id", evaluatorID).Msg("evaluation updated")

	return dto.NewEvaluationResponse(updated), nil
}

func (s *evaluationService) List(ctx context.Context, filter repository.EvaluationFilter) ([]dto.EvaluationResponse, error) {
	evaluations, err := s.evaluations.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewEvaluationResponseSlice(evaluations), nil
}

// validateScores enforces the declared criteria set: every criterion scored,
// every score inside the configured range, no undeclared keys.
func (s *evaluationService) validateScores(scores map[string]float64) error {
	for key := range scores {
		if !s.criteria.Has(key) {
			return fmt.Errorf("%w: %s", ErrUnknownCriterion, key)
		}
	}

	for _, criterion := range s.criteria.Criteria {
		score, ok := scores[criterion.Key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingCriterion, criterion.Key)
		}
		if score < s.criteria.MinScore || score > s.criteria.MaxScore {
			return fmt.Errorf("%w: %s=%v not in [%v, %v]", ErrScoreOutOfRange, criterion.Key, score, s.criteria.MinScore, s.criteria.MaxScore)
		}
	}

	return nil
}
