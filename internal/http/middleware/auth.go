package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"filevault/internal/auth"
	"filevault/internal/model"
)

// UserLocalKey is the key the authenticated user is stored under in Fiber's
// context locals.
const UserLocalKey = "auth_user"

// SessionAuth resolves the caller's session before any file route runs.
// The token is read from the session cookie, with an Authorization bearer
// token as fallback for non-browser clients. Requests without a live session
// get a 401 through the global error handler.
func SessionAuth(validator auth.SessionValidator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			}
		}

		user, err := validator.Validate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, auth.ErrNoSession) {
				return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "session validation failed")
		}

		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// UserFromCtx returns the user stored by SessionAuth, or nil when the request
// did not pass through it.
func UserFromCtx(c *fiber.Ctx) *model.User {
	if u, ok := c.Locals(UserLocalKey).(*model.User); ok {
		return u
	}
	return nil
}
