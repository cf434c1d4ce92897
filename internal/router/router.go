package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/symposiumhq/symposium-api/internal/config"
	"github.com/symposiumhq/symposium-api/internal/handler"
	"github.com/symposiumhq/symposium-api/internal/middleware"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler            *handler.AuthHandler
	EvaluationHandler      *handler.EvaluationHandler
	AdminTeamHandler       *handler.AdminTeamHandler
	AdminFacultyHandler    *handler.AdminFacultyHandler
	AdminEvaluatorHandler  *handler.AdminEvaluatorHandler
	AdminUserHandler       *handler.AdminUserHandler
	AdminDashboardHandler  *handler.AdminDashboardHandler
	AdminEvaluationHandler *handler.AdminEvaluationHandler
	LaunchHandler          *handler.LaunchHandler
	LiveHandler            *handler.LiveHandler
	JWTMiddleware          fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		// keyed by client IP here, login happens before authentication
		auth := app.Group("/api/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	// Evaluation workflow: evaluator scoring, result views, release controls
	if deps.EvaluationHandler != nil {
		evaluations := app.Group("/api/evaluations", jwtMiddleware)
		deps.EvaluationHandler.Register(evaluations)
	}

	// Admin surface
	admin := app.Group("/api/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))

	if deps.AdminDashboardHandler != nil {
		deps.AdminDashboardHandler.Register(admin.Group("/dashboard"))
	}
	if deps.AdminTeamHandler != nil {
		deps.AdminTeamHandler.Register(admin.Group("/teams"))
	}
	if deps.AdminFacultyHandler != nil {
		deps.AdminFacultyHandler.Register(admin.Group("/faculty"))
	}
	if deps.AdminEvaluatorHandler != nil {
		deps.AdminEvaluatorHandler.Register(admin.Group("/evaluators"))
	}
	if deps.AdminUserHandler != nil {
		deps.AdminUserHandler.Register(admin.Group("/users"))
	}
	if deps.AdminEvaluationHandler != nil {
		deps.AdminEvaluationHandler.Register(admin)
	}
	if deps.LaunchHandler != nil {
		deps.LaunchHandler.Register(admin)
	}

	// Launch stream for venue displays; displays are unattended, no JWT
	if deps.LiveHandler != nil {
		live := app.Group("/api/live")
		deps.LiveHandler.Register(live)
	}
}
