package handlers

import (
	applog "woodenmart/internal/log"
	"woodenmart/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Order *services.OrderService
}

// GET /orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	ords, err := h.Order.List(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Could not load orders")
	}
	applog.Audit(c, "admin.orders.list", map[string]any{"count": len(ords)})
	return c.JSON(ords)
}
