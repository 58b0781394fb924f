package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"woodenmart/internal/domain"
	applog "woodenmart/internal/log"
	"woodenmart/internal/services"
)

type OrderHandler struct {
	Order *services.OrderService
}

// POST /checkout answers with {url}, {success, order_id} or {error}.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in domain.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"field": "checkout", "reason": "bad_body"})
		return fail(c, fiber.StatusBadRequest, "invalid request")
	}

	resp, order, err := h.Order.Place(c.UserContext(), in)
	switch {
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidOrder),
		errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrInsufficientStock):
		// business rule errors surface as 400
		applog.Security(c, "order.place.fail", map[string]any{"email": in.CustomerEmail, "error": err.Error()})
		return fail(c, fiber.StatusBadRequest, "Could not place order. Please review quantities and try again.")
	case err != nil:
		return err
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id": order.ID,
		"total":    order.Total.String(),
		"status":   order.Status,
		"lines":    len(order.Items),
	})
	return c.JSON(resp)
}
