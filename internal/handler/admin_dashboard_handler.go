package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/service"
	"github.com/symposiumhq/symposium-api/internal/utils"
)

// AdminDashboardHandler serves the cached dashboard counters.
type AdminDashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewAdminDashboardHandler builds a dashboard handler instance.
func NewAdminDashboardHandler(service service.DashboardService, logger zerolog.Logger) *AdminDashboardHandler {
	return &AdminDashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_dashboard_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AdminDashboardHandler) Register(router fiber.Router) {
	router.Get("", h.stats)
}

func (h *AdminDashboardHandler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "dashboard retrieved", stats)
}
