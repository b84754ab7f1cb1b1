package handler

import (
	"errors"

	"bakery-storefront/internal/core/server"
	"bakery-storefront/internal/core/validation"
	"bakery-storefront/internal/features/session/domain"
	"bakery-storefront/internal/features/session/ports"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles login, registration and profile requests.
type SessionHandler struct {
	service ports.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// SessionView is the visitor-facing projection of a session. The token stays server side.
type SessionView struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsAdmin         bool         `json:"isAdmin"`
	DisplayName     string       `json:"displayName,omitempty"`
	Email           string       `json:"email,omitempty"`
	User            *domain.User `json:"user,omitempty"`
}

func viewOf(s *domain.Session) SessionView {
	return SessionView{
		IsAuthenticated: s.IsAuthenticated,
		IsAdmin:         s.IsAdmin(),
		DisplayName:     s.DisplayName(),
		Email:           s.Email(),
		User:            s.User,
	}
}

// Login handles POST /auth/login.
// @Summary Log in
// @Tags Session
// @Accept json
// @Produce json
// @Param credentials body domain.Credentials true "Credentials"
// @Success 200 {object} SessionView
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /auth/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var creds domain.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := validation.Struct(creds); err != nil {
		return server.RespondError(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	sess, err := h.service.Login(c.UserContext(), Current(c).ID, creds)
	if err != nil {
		return h.authError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(viewOf(sess))
}

// Register handles POST /auth/register.
// @Summary Register a customer account
// @Tags Session
// @Accept json
// @Produce json
// @Param registration body domain.Registration true "Registration form"
// @Success 201 {object} SessionView
// @Failure 400 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /auth/register [post]
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var form domain.Registration
	if err := c.BodyParser(&form); err != nil {
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := validation.Struct(form); err != nil {
		return server.RespondError(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	sess, err := h.service.Register(c.UserContext(), Current(c).ID, form)
	if err != nil {
		return h.authError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(viewOf(sess))
}

// Logout handles POST /auth/logout.
// @Summary Log out
// @Tags Session
// @Produce json
// @Success 200 {object} SessionView
// @Router /auth/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	sess := Current(c)
	if err := h.service.Logout(c.UserContext(), sess.ID); err != nil {
		return server.RespondError(c, fiber.StatusInternalServerError, "Failed to log out", err)
	}
	sess.Logout()
	return c.Status(fiber.StatusOK).JSON(viewOf(sess))
}

// Me handles GET /auth/me.
// @Summary Current session
// @Tags Session
// @Produce json
// @Success 200 {object} SessionView
// @Router /auth/me [get]
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(viewOf(Current(c)))
}

// UpdateProfile handles PATCH /auth/me.
// @Summary Update the profile of the logged-in user
// @Tags Session
// @Accept json
// @Produce json
// @Param patch body domain.ProfilePatch true "Fields to change"
// @Success 200 {object} SessionView
// @Failure 400 {object} server.ErrorResponse
// @Failure 401 {object} server.ErrorResponse
// @Router /auth/me [patch]
func (h *SessionHandler) UpdateProfile(c *fiber.Ctx) error {
	var patch domain.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return server.RespondError(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	sess, err := h.service.UpdateProfile(c.UserContext(), Current(c).ID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return server.RespondError(c, fiber.StatusUnauthorized, "Login required", nil)
		}
		return server.RespondError(c, fiber.StatusInternalServerError, "Failed to update profile", err)
	}
	return c.Status(fiber.StatusOK).JSON(viewOf(sess))
}

func (h *SessionHandler) authError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return server.RespondError(c, fiber.StatusUnauthorized, "invalid credentials", nil)
	}
	return server.RespondGatewayError(c, err)
}
