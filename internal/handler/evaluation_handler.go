package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/criteria"
	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/middleware"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/service"
	"github.com/symposiumhq/symposium-api/internal/utils"
)

// EvaluationHandler exposes the scoring workflow: evaluator submissions, the
// role-gated result views, and the admin release controls.
type EvaluationHandler struct {
	evaluations service.EvaluationService
	results     service.ResultService
	releases    service.ReleaseService
	criteria    criteria.Set
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewEvaluationHandler builds an evaluation handler instance.
func NewEvaluationHandler(evaluations service.EvaluationService, results service.ResultService, releases service.ReleaseService, criteriaSet criteria.Set, validator *validator.Validate, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluations: evaluations,
		results:     results,
		releases:    releases,
		criteria:    criteriaSet,
		validator:   validator,
		logger:      logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. The group is
// expected to sit behind the JWT middleware; role checks happen per route.
func (h *EvaluationHandler) Register(router fiber.Router) {
	evaluator := middleware.RequireRole(models.RoleEvaluator)
	admin := middleware.RequireRole(models.RoleAdmin)

	router.Get("/criteria", h.listCriteria)

	router.Get("/evaluator/teams", evaluator, h.assignedTeams)
	router.Get("/team/:teamId", evaluator, h.teamForEvaluation)
	router.Post("/submit", evaluator, h.submit)
	router.Put("/:evaluationId", evaluator, h.update)

	router.Get("/admin/overview", admin, h.overview)
	router.Get("/admin/team/:teamId", admin, h.teamDetail)
	router.Post("/admin/release-results", admin, h.releaseResults)

	router.Get("/results/team", middleware.RequireRole(models.RoleTeam), h.teamResults)
	router.Get("/results/faculty", middleware.RequireRole(models.RoleFaculty), h.facultyResults)
}

func (h *EvaluationHandler) listCriteria(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "criteria retrieved", h.criteria)
}

func (h *EvaluationHandler) assignedTeams(c *fiber.Ctx) error {
	evaluator, err := h.evaluations.EvaluatorForUser(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	teams, err := h.evaluations.AssignedTeams(c.Context(), evaluator.ID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assigned teams retrieved", teams)
}

func (h *EvaluationHandler) teamForEvaluation(c *fiber.Ctx) error {
	teamID, err := parseUintParam(c, "teamId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	evaluator, err := h.evaluations.EvaluatorForUser(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	team, err := h.evaluations.TeamForEvaluation(c.Context(), evaluator.ID, teamID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team retrieved", team)
}

func (h *EvaluationHandler) submit(c *fiber.Ctx) error {
	var payload dto.EvaluationSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	evaluator, err := h.evaluations.EvaluatorForUser(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	evaluation, err := h.evaluations.Submit(c.Context(), evaluator.ID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluation submitted", evaluation)
}

func (h *EvaluationHandler) update(c *fiber.Ctx) error {
	evaluationID, err := parseUintParam(c, "evaluationId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.EvaluationUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	evaluator, err := h.evaluations.EvaluatorForUser(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	evaluation, err := h.evaluations.Update(c.Context(), evaluationID, evaluator.ID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation updated", evaluation)
}

func (h *EvaluationHandler) overview(c *fiber.Ctx) error {
	overview, err := h.results.Overview(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "evaluation overview retrieved", overview)
}

func (h *EvaluationHandler) teamDetail(c *fiber.Ctx) error {
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

func (h *EvaluationHandler) releaseResults(c *fiber.Ctx) error {
	var payload dto.ReleaseRequest
	if err := c.BodyParser(&payload); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	states, err := h.releases.Release(c.Context(), payload, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "results released", states)
}

func (h *EvaluationHandler) teamResults(c *fiber.Ctx) error {
	results, err := h.results.ResultsForTeamUser(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team results retrieved", results)
}

func (h *EvaluationHandler) facultyResults(c *fiber.Ctx) error {
	results, err := h.results.ResultsForFacultyUser(c.Context(), userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "faculty results retrieved", results)
}

func (h *EvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotAssigned), errors.Is(err, service.ErrNotOwner):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEvaluatorNotFound):
		return utils.SendError(c, fiber.StatusForbidden, "no evaluator profile for this account")
	case errors.Is(err, service.ErrTeamNotFound),
		errors.Is(err, service.ErrFacultyNotFound),
		errors.Is(err, service.ErrEvaluationNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrScoreOutOfRange),
		errors.Is(err, service.ErrUnknownCriterion),
		errors.Is(err, service.ErrMissingCriterion):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
