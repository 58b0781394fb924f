package handlers

import (
	"errors"

	"woodenmart/internal/domain"
	"woodenmart/internal/log"
	"woodenmart/internal/services"
	"woodenmart/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in domain.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_body"})
		return fail(c, fiber.StatusBadRequest, "invalid request")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": in.Email, "reason": "bad_format"})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	if !validate.Password(in.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	tok, u, err := h.Auth.Login(c.UserContext(), email, in.Password)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, fiber.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return err
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email, "role": u.Role})
	return c.JSON(domain.LoginResponse{Token: tok})
}
