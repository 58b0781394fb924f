package handlers

import "github.com/gofiber/fiber/v2"

// fail writes the error body every endpoint uses. msg must be safe to show a client.
func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(c *fiber.Ctx) string {
	const prefix = "Bearer "
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
