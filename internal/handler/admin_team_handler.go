package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/repository"
	"github.com/symposiumhq/symposium-api/internal/service"
	"github.com/symposiumhq/symposium-api/internal/utils"
)

// AdminTeamHandler manages the team directory endpoints.
type AdminTeamHandler struct {
	service   service.AdminTeamService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminTeamHandler builds a team directory handler instance.
func NewAdminTeamHandler(service service.AdminTeamService, validator *validator.Validate, logger zerolog.Logger) *AdminTeamHandler {
	return &AdminTeamHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "admin_team_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AdminTeamHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/resend-invitation", h.resendInvitation)
}

func (h *AdminTeamHandler) list(c *fiber.Ctx) error {
	filter := repository.TeamFilter{}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Category = category
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = search
	}

	teams, err := h.service.List(c.Context(), filter)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "teams retrieved", teams)
}

func (h *AdminTeamHandler) create(c *fiber.Ctx) error {
	var payload dto.TeamCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	team, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "team created", team)
}

func (h *AdminTeamHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.TeamUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	team, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team updated", team)
}

func (h *AdminTeamHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "team deleted", nil)
}

func (h *AdminTeamHandler) resendInvitation(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.ResendInvitation(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "invitation sent", nil)
}

func (h *AdminTeamHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTeamNotFound), errors.Is(err, service.ErrFacultyNotFound):
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
