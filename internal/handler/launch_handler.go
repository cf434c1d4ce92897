package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/service"
	"github.com/symposiumhq/symposium-api/internal/utils"
)

// LaunchHandler manages display assets and the launch lifecycle.
type LaunchHandler struct {
	service   service.LaunchService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLaunchHandler builds a launch handler instance.
func NewLaunchHandler(service service.LaunchService, validator *validator.Validate, logger zerolog.Logger) *LaunchHandler {
	return &LaunchHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "launch_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *LaunchHandler) Register(router fiber.Router) {
	posters := router.Group("/poster-launch")
	posters.Get("/posters", h.listPosters)
	posters.Post("/posters", h.uploadPoster)
	posters.Post("/launch", h.launchKind(models.LaunchKindPoster))
	posters.Get("/launched", h.launchedKind(models.LaunchKindPoster))
	posters.Put("/launched/:id", h.update)
	posters.Delete("/launched/:id", h.stop)
	posters.Delete("/reset-all", h.resetAll)

	videos := router.Group("/video-launch")
	videos.Get("/videos", h.listVideos)
	videos.Post("/videos", h.uploadVideo)
	videos.Post("/launch", h.launchKind(models.LaunchKindVideo))
	videos.Get("/launched", h.launchedKind(models.LaunchKindVideo))
	videos.Put("/launched/:id", h.update)
	videos.Delete("/launched/:id", h.stop)
	videos.Delete("/reset-all", h.resetAll)

	router.Delete("/reset-all-launches", h.resetAll)
}

func (h *LaunchHandler) listPosters(c *fiber.Ctx) error {
	posters, err := h.service.ListPosters(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "posters retrieved", posters)
}

func (h *LaunchHandler) uploadPoster(c *fiber.Ctx) error {
	payload := dto.AssetUploadRequest{Title: strings.TrimSpace(c.FormValue("title"))}
	if teamID, err := parseFormUint(c, "team_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	} else if teamID != nil {
		payload.TeamID = teamID
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	poster, err := h.service.UploadPoster(c.Context(), payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "poster uploaded", poster)
}

func (h *LaunchHandler) listVideos(c *fiber.Ctx) error {
	videos, err := h.service.ListVideos(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "videos retrieved", videos)
}

func (h *LaunchHandler) uploadVideo(c *fiber.Ctx) error {
	payload := dto.AssetUploadRequest{Title: strings.TrimSpace(c.FormValue("title"))}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	video, err := h.service.UploadVideo(c.Context(), payload, file)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "video uploaded", video)
}

func (h *LaunchHandler) launchKind(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var payload dto.LaunchRequest
		if err := c.BodyParser(&payload); err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
		}

		launch, err := h.service.Launch(c.Context(), kind, payload)
		if err != nil {
			return h.handleError(c, err)
		}

		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "asset launched", launch)
	}
}

func (h *LaunchHandler) launchedKind(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		launches, err := h.service.Active(c.Context(), kind)
		if err != nil {
			return h.handleError(c, err)
		}

		return utils.SendSuccess(c, "active launches retrieved", launches)
	}
}

func (h *LaunchHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.LaunchUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	launch, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "launch updated", launch)
}

func (h *LaunchHandler) stop(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Stop(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "launch stopped", nil)
}

func (h *LaunchHandler) resetAll(c *fiber.Ctx) error {
	removed, err := h.service.ResetAll(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "launches reset", fiber.Map{"removed": removed})
}

func (h *LaunchHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAssetNotFound), errors.Is(err, service.ErrLaunchNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyLaunched):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrUnsupportedAssetType):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
