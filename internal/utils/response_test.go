package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/symposiumhq/symposium-api/internal/utils"
)

func TestSendSuccessDefaultsMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "", map[string]string{"hello": "world"})
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
		Kind    string            `json:"kind"`
	}
	decode(t, resp, &payload)

	require.True(t, payload.Success)
	require.Equal(t, "success", payload.Message)
	require.Equal(t, "world", payload.Data["hello"])
	require.Empty(t, payload.Kind)
}

func TestSendErrorDerivesKindFromStatus(t *testing.T) {
	cases := map[int]string{
		fiber.StatusBadRequest:          utils.KindValidationError,
		fiber.StatusUnauthorized:        utils.KindUnauthorized,
		fiber.StatusForbidden:           utils.KindPermissionDenied,
		fiber.StatusNotFound:            utils.KindNotFound,
		fiber.StatusConflict:            utils.KindConflict,
		fiber.StatusInternalServerError: utils.KindInternal,
	}

	for status, kind := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return utils.SendError(c, status, "boom")
		})

		resp := performRequest(t, app, http.MethodGet, "/")
		require.Equal(t, status, resp.StatusCode)

		var payload struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Kind    string `json:"kind"`
		}
		decode(t, resp, &payload)

		require.False(t, payload.Success)
		require.Equal(t, "boom", payload.Message)
		require.Equal(t, kind, payload.Kind)
	}
}

func TestFailIncludesDetails(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		details := map[string]string{"field": "teamId"}
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", details)
	})

	resp := performRequest(t, app, http.MethodGet, "/")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Kind    string            `json:"kind"`
		Details map[string]string `json:"details"`
	}
	decode(t, resp, &payload)

	require.False(t, payload.Success)
	require.Equal(t, "invalid payload", payload.Message)
	require.Equal(t, utils.KindValidationError, payload.Kind)
	require.Equal(t, "teamId", payload.Details["field"])
}

func performRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
