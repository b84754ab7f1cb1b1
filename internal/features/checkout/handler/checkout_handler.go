package handler

import (
	"errors"

	"bakery-storefront/internal/core/server"
	"bakery-storefront/internal/core/validation"
	"bakery-storefront/internal/features/checkout/domain"
	"bakery-storefront/internal/features/checkout/ports"
	orders "bakery-storefront/internal/features/orders/domain"
	session "bakery-storefront/internal/features/session/handler"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler exposes the checkout flow.
type CheckoutHandler struct {
	service ports.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// FinalizeRequest is the body of POST /checkout/finalize.
type FinalizeRequest struct {
	PaymentMethod orders.PaymentMethod `json:"paymentMethod" validate:"required,oneof=EFECTIVO TARJETA TRANSFERENCIA"`
}

// GetState handles GET /checkout.
// @Summary Current checkout state
// @Tags Checkout
// @Produce json
// @Success 200 {object} domain.View
// @Router /checkout [get]
func (h *CheckoutHandler) GetState(c *fiber.Ctx) error {
	view, err := h.service.State(c.UserContext(), session.Current(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// Proceed handles POST /checkout/proceed.
// @Summary Leave the cart for checkout
// @Description Anonymous visitors are sent to the login gate; the checkout resumes after login.
// @Tags Checkout
// @Produce json
// @Success 200 {object} domain.View
// @Failure 400 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /checkout/proceed [post]
func (h *CheckoutHandler) Proceed(c *fiber.Ctx) error {
	view, err := h.service.Proceed(c.UserContext(), session.Current(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// Continue handles POST /checkout/continue.
// @Summary Choose delivery or pickup
// @Tags Checkout
// @Accept json
// @Produce json
// @Param fulfillment body domain.Fulfillment true "Shipping details"
// @Success 200 {object} domain.View
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Router /checkout/continue [post]
func (h *CheckoutHandler) Continue(c *fiber.Ctx) error {
	var ful domain.Fulfillment
	if err := c.BodyParser(&ful); err != nil {
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	view, err := h.service.Continue(c.UserContext(), session.Current(c), ful)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// Back handles POST /checkout/back.
// @Summary Go one checkout step back
// @Tags Checkout
// @Produce json
// @Success 200 {object} domain.View
// @Failure 409 {object} server.ErrorResponse
// @Router /checkout/back [post]
func (h *CheckoutHandler) Back(c *fiber.Ctx) error {
	view, err := h.service.Back(c.UserContext(), session.Current(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// Finalize handles POST /checkout/finalize.
// @Summary Submit the order
// @Tags Checkout
// @Accept json
// @Produce json
// @Param payment body FinalizeRequest true "Payment method"
// @Success 200 {object} domain.View
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 409 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /checkout/finalize [post]
func (h *CheckoutHandler) Finalize(c *fiber.Ctx) error {
	var req FinalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := validation.Struct(req); err != nil {
		return server.RespondError(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	view, err := h.service.Finalize(c.UserContext(), session.Current(c), req.PaymentMethod)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// Close handles POST /checkout/close.
// @Summary Leave or dismiss the checkout
// @Tags Checkout
// @Produce json
// @Success 200 {object} domain.View
// @Failure 409 {object} server.ErrorResponse
// @Router /checkout/close [post]
func (h *CheckoutHandler) Close(c *fiber.Ctx) error {
	view, err := h.service.Close(c.UserContext(), session.Current(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *CheckoutHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return server.RespondError(c, fiber.StatusBadRequest, "Cart is empty", nil)
	case errors.Is(err, domain.ErrInvalidFulfillment):
		return server.RespondError(c, fiber.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidPayment):
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid payment method", nil)
	case errors.Is(err, domain.ErrLoginRequired):
		return server.RespondError(c, fiber.StatusUnauthorized, "Login required", nil)
	case errors.Is(err, domain.ErrInvalidTransition):
		return server.RespondError(c, fiber.StatusConflict, "Action not available at this checkout step", nil)
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return server.RespondError(c, fiber.StatusConflict, "Order submission already in progress", nil)
	case errors.Is(err, domain.ErrSubmissionFailed):
		return server.RespondGatewayError(c, err)
	default:
		return server.RespondError(c, fiber.StatusInternalServerError, "Checkout failed", err)
	}
}
