package handler

import (
	"github.com/gofiber/fiber/v2"

	"filevault/internal/http/middleware"
)

// errorPayload is the standardized error response body. Every failure surfaces
// as a plain message; internal error details never leak to the client.
type errorPayload struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{
		Error:     message,
		RequestID: requestIDFromCtx(c),
	})
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for errors escaping the route handlers (including the 401s raised
// by the session middleware).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "Unauthorized")
		case fiber.StatusNotFound:
			return writeError(c, status, "Resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed")
		default:
			return writeError(c, status, "Internal server error")
		}
	}
}
