package middleware

import (
	"strconv"

	"translation-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	UserIDHeader = "X-User-ID"
	userIDKey    = "user_id"
)

// RequireUser reads the requesting user from the X-User-ID header set by the
// upstream gateway. Requests without a valid id are rejected.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(UserIDHeader)
		if raw == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing "+UserIDHeader+" header")
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid "+UserIDHeader+" header")
		}
		c.Locals(userIDKey, uint(id))
		return c.Next()
	}
}

// UserID returns the id stored by RequireUser, or 0 outside of it.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDKey).(uint)
	return id
}
