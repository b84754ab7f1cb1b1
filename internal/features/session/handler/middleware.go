package handler

import (
	"bakery-storefront/internal/core/apiclient"
	"bakery-storefront/internal/core/server"
	"bakery-storefront/internal/features/session/domain"
	"bakery-storefront/internal/features/session/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionLocalsKey = "session"

// CookieConfig describes the visitor session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Middleware resolves the visitor session from the cookie, issuing a new id on
// first contact. The session id and bearer token are placed on the user context
// so backend calls and the unauthorized hook can find them.
func Middleware(service ports.SessionService, cookie CookieConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cookie.Name)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cookie.Name,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				Secure:   cookie.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		sess, err := service.Load(c.UserContext(), id)
		if err != nil {
			return server.RespondError(c, fiber.StatusInternalServerError, "Failed to load session", err)
		}

		c.Locals(sessionLocalsKey, sess)

		ctx := domain.WithID(c.UserContext(), id)
		ctx = apiclient.WithToken(ctx, sess.Token)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Current returns the session resolved by Middleware.
func Current(c *fiber.Ctx) *domain.Session {
	if sess, ok := c.Locals(sessionLocalsKey).(*domain.Session); ok {
		return sess
	}
	return domain.New("")
}

// RequireAuth rejects anonymous visitors.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Current(c).IsAuthenticated {
			return server.RespondError(c, fiber.StatusUnauthorized, "Login required", nil)
		}
		return c.Next()
	}
}

// RequireAdmin rejects everyone but administrators.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := Current(c)
		if !sess.IsAuthenticated {
			return server.RespondError(c, fiber.StatusUnauthorized, "Login required", nil)
		}
		if !sess.IsAdmin() {
			return server.RespondError(c, fiber.StatusForbidden, "Administrator role required", nil)
		}
		return c.Next()
	}
}

// RefuseAdmin keeps administrators out of the cart and checkout.
func RefuseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Current(c).IsAdmin() {
			return server.RespondError(c, fiber.StatusForbidden, "Not available for administrators", nil)
		}
		return c.Next()
	}
}
