package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/repository"
	"github.com/symposiumhq/symposium-api/internal/service"
	"github.com/symposiumhq/symposium-api/internal/utils"
)

// AdminEvaluationHandler exposes the raw evaluation records plus the release
// reset used between rounds.
type AdminEvaluationHandler struct {
	evaluations service.EvaluationService
	results     service.ResultService
	releases    service.ReleaseService
	logger      zerolog.Logger
}

// NewAdminEvaluationHandler builds an admin evaluation handler instance.
func NewAdminEvaluationHandler(evaluations service.EvaluationService, results service.ResultService, releases service.ReleaseService, logger zerolog.Logger) *AdminEvaluationHandler {
	return &AdminEvaluationHandler{
		evaluations: evaluations,
		results:     results,
		releases:    releases,
		logger:      logger.With().Str("component", "admin_evaluation_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AdminEvaluationHandler) Register(router fiber.Router) {
	router.Get("/evaluations", h.list)
	router.Get("/evaluations/team/:teamId", h.teamDetail)
	router.Get("/release-states", h.releaseStates)
	router.Post("/reset-results", h.resetResults)
}

func (h *AdminEvaluationHandler) list(c *fiber.Ctx) error {
	filter := repository.EvaluationFilter{}
	if evaluatorID, err := parseQueryUint(c, "evaluator_id"); err == nil && evaluatorID != nil {
		filter.EvaluatorID = evaluatorID
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter.Status = &status
	}

	evaluations, err := h.evaluations.List(c.Context(), filter)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluations retrieved", evaluations)
}

func (h *AdminEvaluationHandler) teamDetail(c *fiber.Ctx) error {
	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	evaluations, err := h.results.TeamDetail(c.Context(), teamID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team evaluations retrieved", evaluations)
}

func (h *AdminEvaluationHandler) releaseStates(c *fiber.Ctx) error {
	states, err := h.releases.States(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "release states retrieved", states)
}

func (h *AdminEvaluationHandler) resetResults(c *fiber.Ctx) error {
	if err := h.releases.ResetAll(c.Context(), userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "release gates closed", nil)
}

func (h *AdminEvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
