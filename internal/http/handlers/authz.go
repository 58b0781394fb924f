package handlers

import (
	"errors"

	applog "woodenmart/internal/log"
	"woodenmart/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin enforces a valid bearer token with the ADMIN role.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearer(c)
		if tok == "" {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "missing token"})
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		claims, err := auth.RequireAdmin(tok)
		if errors.Is(err, services.ErrNotPermitted) {
			applog.Security(c, "access.denied.admin", map[string]any{"sub": claims.Subject})
			return fail(c, fiber.StatusForbidden, "access denied")
		}
		if err != nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "bad token"})
			return fail(c, fiber.StatusUnauthorized, "authentication required")
		}
		c.Locals("claims", claims)
		return c.Next()
	}
}
