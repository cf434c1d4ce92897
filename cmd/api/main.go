package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/config"
	"github.com/symposiumhq/symposium-api/internal/criteria"
	"github.com/symposiumhq/symposium-api/internal/database"
	"github.com/symposiumhq/symposium-api/internal/handler"
	"github.com/symposiumhq/symposium-api/internal/middleware"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/repository"
	"github.com/symposiumhq/symposium-api/internal/router"
	"github.com/symposiumhq/symposium-api/internal/service"
	cloud "github.com/symposiumhq/symposium-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{}, &models.Faculty{}, &models.Team{}, &models.Evaluator{},
		&models.Assignment{}, &models.Evaluation{}, &models.ReleaseState{},
		&models.Poster{}, &models.PromotionVideo{}, &models.Launch{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	criteriaSet, err := criteria.Load(cfg.CriteriaFile, cfg.ScoreMin, cfg.ScoreMax)
	if err != nil {
		log.Fatalf("failed to load criteria definition: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, caches disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		logger.Warn().Err(err).Msg("nats unavailable, running single-node event fanout")
		natsConn = nil
	} else {
		defer natsConn.Close()
	}

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		cloudService, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudService
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	evaluatorRepo := repository.NewEvaluatorRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	releaseRepo := repository.NewReleaseRepository(db)
	launchRepo := repository.NewLaunchRepository(db)
	analyticsRepo := repository.NewAdminAnalyticsRepository(db)

	mailer := service.NewLogMailer(logger)

	authService := service.NewAuthService(userRepo, facultyRepo, validate, cfg.JWTSecret, cfg.JWTTTL, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, evaluatorRepo, teamRepo, validate, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, assignmentRepo, evaluatorRepo, teamRepo, criteriaSet, validate, logger)
	releaseService := service.NewReleaseService(releaseRepo, teamRepo, redisClient, natsConn, cfg.EventChannel, logger)
	resultService := service.NewResultService(evaluationRepo, assignmentRepo, teamRepo, userRepo, facultyRepo, releaseService, criteriaSet, redisClient, cfg.ResultsCacheTTL, logger)
	dashboardService := service.NewDashboardService(analyticsRepo, redisClient, cfg.DashboardCacheTTL, logger)
	adminTeamService := service.NewAdminTeamService(teamRepo, facultyRepo, validate, mailer, logger)
	adminFacultyService := service.NewAdminFacultyService(facultyRepo, validate, mailer, logger)
	adminEvaluatorService := service.NewAdminEvaluatorService(evaluatorRepo, validate, mailer, logger)
	adminUserService := service.NewAdminUserService(userRepo, validate, logger)

	launchFeed := service.NewLaunchFeed(natsConn, cfg.EventChannel, logger)
	launchService := service.NewLaunchService(launchRepo, uploader, launchFeed, validate, logger)

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()
	launchFeed.Start(feedCtx)

	authHandler := handler.NewAuthHandler(authService, validate, logger)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService, resultService, releaseService, criteriaSet, validate, logger)
	adminTeamHandler := handler.NewAdminTeamHandler(adminTeamService, validate, logger)
	adminFacultyHandler := handler.NewAdminFacultyHandler(adminFacultyService, validate, logger)
	adminEvaluatorHandler := handler.NewAdminEvaluatorHandler(adminEvaluatorService, assignmentService, validate, logger)
	adminUserHandler := handler.NewAdminUserHandler(adminUserService, validate, logger)
	adminDashboardHandler := handler.NewAdminDashboardHandler(dashboardService, logger)
	adminEvaluationHandler := handler.NewAdminEvaluationHandler(evaluationService, resultService, releaseService, logger)
	launchHandler := handler.NewLaunchHandler(launchService, validate, logger)
	liveHandler := handler.NewLiveHandler(launchFeed, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:            authHandler,
		EvaluationHandler:      evaluationHandler,
		AdminTeamHandler:       adminTeamHandler,
		AdminFacultyHandler:    adminFacultyHandler,
		AdminEvaluatorHandler:  adminEvaluatorHandler,
		AdminUserHandler:       adminUserHandler,
		AdminDashboardHandler:  adminDashboardHandler,
		AdminEvaluationHandler: adminEvaluationHandler,
		LaunchHandler:          launchHandler,
		LiveHandler:            liveHandler,
		JWTMiddleware:          middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
