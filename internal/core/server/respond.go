package server

import (
	"errors"

	"bakery-storefront/internal/core/apiclient"
	"bakery-storefront/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// RayID returns the request id assigned by the requestid middleware.
func RayID(c *fiber.Ctx) string {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return rayID
}

// RespondError writes an ErrorResponse. Server errors are logged with the cause.
func RespondError(c *fiber.Ctx, status int, message string, cause error) error {
	if status >= fiber.StatusInternalServerError && cause != nil {
		logger.Get().Error(message,
			zap.String("path", c.Path()),
			zap.String("ray_id", RayID(c)),
			zap.Error(cause),
		)
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: message,
		RayID:   RayID(c),
	})
}

// RespondGatewayError maps a backend failure to the visitor-facing response.
// A rejected token answers 401 with a redirect to the entry route; the session
// has already been torn down by the gateway hook.
func RespondGatewayError(c *fiber.Ctx, err error) error {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		c.Set(fiber.HeaderLocation, "/")
		return RespondError(c, fiber.StatusUnauthorized, "session expired", nil)
	}

	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return RespondError(c, fiber.StatusInternalServerError, "Internal Server Error", err)
	}

	if apiErr.Kind == apiclient.KindNetwork {
		return RespondError(c, fiber.StatusBadGateway, apiErr.Message, err)
	}

	status := apiErr.Status
	if status >= fiber.StatusInternalServerError {
		status = fiber.StatusBadGateway
	}
	return RespondError(c, status, apiErr.Message, err)
}
