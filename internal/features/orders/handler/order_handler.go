package handler

import (
	"errors"

	"bakery-storefront/internal/core/server"
	"bakery-storefront/internal/features/orders/domain"
	"bakery-storefront/internal/features/orders/ports"
	session "bakery-storefront/internal/features/session/handler"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests related to orders.
type OrderHandler struct {
	// service is the OrderService instance.
	service ports.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s ports.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// StatusRequest is the body of PATCH /orders/:id/status.
type StatusRequest struct {
	Status string `json:"status"`
}

func viewer(c *fiber.Ctx) ports.Viewer {
	sess := session.Current(c)
	return ports.Viewer{UserID: sess.UserID(), IsAdmin: sess.IsAdmin()}
}

// ListOrders returns the caller's orders, or every order for administrators.
// @Summary List orders
// @Description Customers get their own orders. Administrators get all orders, optionally filtered.
// @Tags Orders
// @Produce json
// @Param status query string false "Status filter (admin only)"
// @Param q query string false "Search by id, customer name or email (admin only)"
// @Success 200 {array} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	v := viewer(c)

	var (
		orders []domain.Order
		err    error
	)
	if v.IsAdmin {
		filter := domain.Filter{Search: c.Query("q")}
		if raw := c.Query("status"); raw != "" {
			filter.Status, err = domain.ParseStatus(raw)
			if err != nil {
				return server.RespondError(c, fiber.StatusBadRequest, "Invalid status", nil)
			}
		}
		orders, err = h.service.AdminList(c.UserContext(), filter)
	} else {
		orders, err = h.service.ListMine(c.UserContext(), v)
	}
	if err != nil {
		return h.fail(c, err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	return c.Status(fiber.StatusOK).JSON(orders)
}

// GetOrder returns one order.
// @Summary Get Order by ID
// @Description Customers may only read their own orders.
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return server.RespondError(c, fiber.StatusBadRequest, "Order ID is required", nil)
	}

	order, err := h.service.Get(c.UserContext(), viewer(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(order)
}

// UpdateStatus changes the status of an order.
// @Summary Change order status
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param status body StatusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 403 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return server.RespondError(c, fiber.StatusBadRequest, "Order ID is required", nil)
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return server.RespondError(c, fiber.StatusBadRequest, "Status is required", nil)
	}

	order, err := h.service.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(order)
}

// DeleteOrder removes an order.
// @Summary Delete an order
// @Tags Orders
// @Param id path int true "Order ID"
// @Success 204
// @Failure 403 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return server.RespondError(c, fiber.StatusBadRequest, "Order ID is required", nil)
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return server.RespondError(c, fiber.StatusNotFound, "Order not found", nil)
	case errors.Is(err, domain.ErrInvalidStatus):
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid status", nil)
	case errors.Is(err, domain.ErrTerminalStatus):
		return server.RespondError(c, fiber.StatusConflict, "Delivered orders cannot change status", nil)
	default:
		return server.RespondGatewayError(c, err)
	}
}
