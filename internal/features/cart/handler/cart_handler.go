package handler

import (
	"errors"

	"bakery-storefront/internal/core/server"
	"bakery-storefront/internal/features/cart/domain"
	"bakery-storefront/internal/features/cart/ports"
	catalog "bakery-storefront/internal/features/catalog/domain"
	session "bakery-storefront/internal/features/session/handler"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles cart requests.
type CartHandler struct {
	service ports.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// AddItemRequest is the body of POST /cart/items.
type AddItemRequest struct {
	ProductID int `json:"productId"`
}

// GetCart handles GET /cart.
// @Summary Show the cart
// @Tags Cart
// @Produce json
// @Success 200 {object} domain.View
// @Failure 403 {object} server.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	cart, err := h.service.Get(c.UserContext(), session.Current(c).ID)
	if err != nil {
		return server.RespondError(c, fiber.StatusInternalServerError, "Failed to load cart", err)
	}
	return c.Status(fiber.StatusOK).JSON(cart.View())
}

// AddItem handles POST /cart/items.
// @Summary Add a product to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "Product to add"
// @Success 200 {object} domain.View
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID <= 0 {
		return server.RespondError(c, fiber.StatusBadRequest, "productId is required", nil)
	}

	cart, err := h.service.Add(c.UserContext(), session.Current(c).ID, req.ProductID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cart.View())
}

// Increment handles POST /cart/items/:id/increment.
// @Summary Add one unit to a cart line
// @Tags Cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.View
// @Failure 404 {object} server.ErrorResponse
// @Router /cart/items/{id}/increment [post]
func (h *CartHandler) Increment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid product ID", nil)
	}
	cart, err := h.service.Increment(c.UserContext(), session.Current(c).ID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cart.View())
}

// Decrement handles POST /cart/items/:id/decrement.
// @Summary Remove one unit from a cart line (never below one)
// @Tags Cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.View
// @Failure 404 {object} server.ErrorResponse
// @Router /cart/items/{id}/decrement [post]
func (h *CartHandler) Decrement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid product ID", nil)
	}
	cart, err := h.service.Decrement(c.UserContext(), session.Current(c).ID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cart.View())
}

// RemoveItem handles DELETE /cart/items/:id.
// @Summary Remove a line from the cart
// @Tags Cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.View
// @Failure 404 {object} server.ErrorResponse
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid product ID", nil)
	}
	cart, err := h.service.Remove(c.UserContext(), session.Current(c).ID, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cart.View())
}

// ClearCart handles DELETE /cart.
// @Summary Empty the cart
// @Tags Cart
// @Success 204
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext(), session.Current(c).ID); err != nil {
		return server.RespondError(c, fiber.StatusInternalServerError, "Failed to clear cart", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrItemNotInCart):
		return server.RespondError(c, fiber.StatusNotFound, "Item not in cart", nil)
	case errors.Is(err, catalog.ErrProductNotFound):
		return server.RespondError(c, fiber.StatusNotFound, "Product not found", nil)
	default:
		return server.RespondError(c, fiber.StatusInternalServerError, "Failed to update cart", err)
	}
}
