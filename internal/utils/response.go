package utils

import "github.com/gofiber/fiber/v2"

// Stable error kinds surfaced in the response envelope. Clients branch on
// these rather than on message text.
const (
	KindValidationError  = "validation_error"
	KindUnauthorized     = "unauthorized"
	KindPermissionDenied = "permission_denied"
	KindNotFound         = "not_found"
	KindConflict         = "conflict"
	KindInternal         = "internal_error"
)

// APIResponse describes the common structure for API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}

	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success payload using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends an error JSON response, deriving the kind from the status.
func SendError(c *fiber.Ctx, status int, message string) error {
	return SendErrorKind(c, status, KindFromStatus(status), message)
}

// SendErrorKind sends an error JSON response with an explicit error kind.
func SendErrorKind(c *fiber.Ctx, status int, kind, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Kind:    kind,
	})
}

// Fail sends an error response with optional details, such as per-field
// validation messages.
func Fail(c *fiber.Ctx, status int, message string, details interface{}) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Kind:    KindFromStatus(status),
		Details: details,
	})
}

// KindFromStatus maps an HTTP status code to the stable error kind.
func KindFromStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return KindValidationError
	case fiber.StatusUnauthorized:
		return KindUnauthorized
	case fiber.StatusForbidden:
		return KindPermissionDenied
	case fiber.StatusNotFound:
		return KindNotFound
	case fiber.StatusConflict:
		return KindConflict
	default:
		return KindInternal
	}
}
