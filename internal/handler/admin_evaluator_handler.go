package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/service"
	"github.com/symposiumhq/symposium-api/internal/utils"
)

// AdminEvaluatorHandler manages evaluator accounts and their team assignments.
type AdminEvaluatorHandler struct {
	evaluators  service.AdminEvaluatorService
	assignments service.AssignmentService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAdminEvaluatorHandler builds an evaluator directory handler instance.
func NewAdminEvaluatorHandler(evaluators service.AdminEvaluatorService, assignments service.AssignmentService, validator *validator.Validate, logger zerolog.Logger) *AdminEvaluatorHandler {
	return &AdminEvaluatorHandler{
		evaluators:  evaluators,
		assignments: assignments,
		validator:   validator,
		logger:      logger.With().Str("component", "admin_evaluator_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AdminEvaluatorHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Post("/:id/resend-invitation", h.resendInvitation)
	router.Post("/:id/assign-teams", h.assignTeams)
	router.Delete("/:id/teams/:teamId", h.removeTeam)
}

func (h *AdminEvaluatorHandler) list(c *fiber.Ctx) error {
	evaluators, err := h.evaluators.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluators retrieved", evaluators)
}

func (h *AdminEvaluatorHandler) create(c *fiber.Ctx) error {
	var payload dto.EvaluatorCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	evaluator, err := h.evaluators.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluator created", evaluator)
}

func (h *AdminEvaluatorHandler) resendInvitation(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.evaluators.ResendInvitation(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "invitation sent", nil)
}

func (h *AdminEvaluatorHandler) assignTeams(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignTeamsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	evaluator, err := h.assignments.Assign(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teams assigned", evaluator)
}

func (h *AdminEvaluatorHandler) removeTeam(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.assignments.Remove(c.Context(), id, teamID); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assignment removed", nil)
}

func (h *AdminEvaluatorHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEvaluatorNotFound), errors.Is(err, service.ErrTeamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotAssigned):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateAccount):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
