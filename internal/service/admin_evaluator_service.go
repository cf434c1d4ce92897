package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

// AdminEvaluatorService manages the evaluator directory for administrators.
// Team assignment itself goes through the AssignmentService.
type AdminEvaluatorService interface {
	List(ctx context.Context) ([]dto.EvaluatorResponse, error)
	Create(ctx context.Context, payload dto.EvaluatorCreateRequest) (dto.EvaluatorResponse, error)
	ResendInvitation(ctx context.Context, id uint) error
}

type adminEvaluatorService struct {
	evaluators repository.EvaluatorRepository
	validator  *validator.Validate
	mailer     Mailer
	logger     zerolog.Logger
}

// NewAdminEvaluatorService constructs the evaluator directory service.
func NewAdminEvaluatorService(evaluators repository.EvaluatorRepository, validate *validator.Validate, mailer Mailer, logger zerolog.Logger) AdminEvaluatorService {
	return &adminEvaluatorService{
		evaluators: evaluators,
		validator:  validate,
		mailer:     mailer,
		logger:     logger.With().Str("component", "admin_evaluator_service").Logger(),
	}
}

func (s *adminEvaluatorService) List(ctx context.Context) ([]dto.EvaluatorResponse, error) {
	evaluators, err := s.evaluators.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewEvaluatorResponseSlice(evaluators), nil
}

func (s *adminEvaluatorService) Create(ctx context.Context, payload dto.EvaluatorCreateRequest) (dto.EvaluatorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluatorResponse{}, err
	}

	evaluator := models.Evaluator{
		Name:         strings.TrimSpace(payload.Name),
		Email:        strings.ToLower(strings.TrimSpace(payload.Email)),
		Organization: strings.TrimSpace(payload.Organization),
	}

	if err := s.evaluators.Create(ctx, &evaluator); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.EvaluatorResponse{}, ErrDuplicateAccount
		}
		return dto.EvaluatorResponse{}, err
	}

	s.sendInvitation(ctx, evaluator)
	s.logger.Info().Uint("evaluator_id", evaluator.ID).Msg("evaluator created")

	return dto.NewEvaluatorResponse(evaluator), nil
}

func (s *adminEvaluatorService) ResendInvitation(ctx context.Context, id uint) error {
	evaluator, err := s.evaluators.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEvaluatorNotFound
		}
		return err
	}

	s.sendInvitation(ctx, evaluator)
	return nil
}

func (s *adminEvaluatorService) sendInvitation(ctx context.Context, evaluator models.Evaluator) {
	invitation := Invitation{
		RecipientName:  evaluator.Name,
		RecipientEmail: evaluator.Email,
		Role:           models.RoleEvaluator,
		Token:          uuid.NewString(),
	}

	if err := s.mailer.SendInvitation(ctx, invitation); err != nil {
		s.logger.Warn().Err(err).Uint("evaluator_id", evaluator.ID).Msg("failed to queue evaluator invitation")
	}
}
