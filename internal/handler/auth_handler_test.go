package handler_test

import (
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/config"
	"github.com/symposiumhq/symposium-api/internal/handler"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/repository"
	"github.com/symposiumhq/symposium-api/internal/router"
	"github.com/symposiumhq/symposium-api/internal/service"
)

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Faculty{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewFacultyRepository(db),
		validate, testSecret, time.Hour, logger,
	)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test"}, router.Dependencies{
		AuthHandler: handler.NewAuthHandler(authService, validate, logger),
	})

	return app
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	app := setupAuthApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Dina",
		"email":    "dina@example.edu",
		"password": "sup3rsecret",
		"role":     models.RoleTeam,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]any)
	require.NotEmpty(t, data["token"])

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "dina@example.edu",
		"password": "sup3rsecret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}

func TestLoginBadPassword(t *testing.T) {
	app := setupAuthApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Dina",
		"email":    "dina@example.edu",
		"password": "sup3rsecret",
		"role":     models.RoleTeam,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "dina@example.edu",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, "unauthorized", envelope["kind"])
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	app := setupAuthApp(t)

	payload := fiber.Map{
		"name":     "Dina",
		"email":    "dina@example.edu",
		"password": "sup3rsecret",
		"role":     models.RoleTeam,
	}

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", "", payload)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, "conflict", envelope["kind"])
}

func TestRegisterValidation(t *testing.T) {
	app := setupAuthApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Dina",
		"email":    "not-an-email",
		"password": "sup3rsecret",
		"role":     models.RoleTeam,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	require.Equal(t, "validation_error", envelope["kind"])
}
