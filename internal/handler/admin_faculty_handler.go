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

// AdminFacultyHandler manages the faculty directory endpoints.
type AdminFacultyHandler struct {
	service   service.AdminFacultyService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminFacultyHandler builds a faculty directory handler instance.
func NewAdminFacultyHandler(service service.AdminFacultyService, validator *validator.Validate, logger zerolog.Logger) *AdminFacultyHandler {
	return &AdminFacultyHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "admin_faculty_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AdminFacultyHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/resend-invitation", h.resendInvitation)
}

func (h *AdminFacultyHandler) list(c *fiber.Ctx) error {
	faculty, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "faculty retrieved", faculty)
}

func (h *AdminFacultyHandler) create(c *fiber.Ctx) error {
	var payload dto.FacultyCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	faculty, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "faculty created", faculty)
}

func (h *AdminFacultyHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.FacultyUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	faculty, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "faculty updated", faculty)
}

func (h *AdminFacultyHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "faculty deleted", nil)
}

func (h *AdminFacultyHandler) resendInvitation(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.ResendInvitation(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "invitation sent", nil)
}

func (h *AdminFacultyHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrFacultyNotFound):
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
