package handlers

import (
	"errors"

	"woodenmart/internal/domain"
	"woodenmart/internal/log"
	"woodenmart/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(ps)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in domain.ProductPayload
	if err := c.BodyParser(&in); err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "product", "reason": "bad_body"})
		return fail(c, fiber.StatusBadRequest, "invalid request")
	}
	p, err := h.Catalog.Create(c.UserContext(), in)
	if errors.Is(err, services.ErrInvalidProduct) {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return fail(c, fiber.StatusBadRequest, "title and a non-negative price are required")
	}
	if err != nil {
		return err
	}
	log.Audit(c, "product.create", map[string]any{"product_id": p.ID, "title": p.Title, "price": p.Price.String()})
	return c.Status(fiber.StatusCreated).JSON(p)
}
