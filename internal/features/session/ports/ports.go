package ports

import (
	"context"
	"time"

	"bakery-storefront/internal/features/session/domain"
)

// Store persists sessions. Secondary port.
type Store interface {
	// Load returns the stored session, or a fresh unauthenticated one when absent.
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// AuthGateway authenticates against the bakery backend. Secondary port.
type AuthGateway interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	Register(ctx context.Context, form domain.Registration) (*domain.AuthResult, error)
}

// LoginListener is told about every successful login or registration.
type LoginListener interface {
	OnLogin(ctx context.Context, s *domain.Session) error
}

// LogoutListener is told when a session is logged out or torn down.
type LogoutListener interface {
	OnLogout(ctx context.Context, sessionID string) error
}

// SessionService is the primary port used by handlers and the session middleware.
type SessionService interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
	Login(ctx context.Context, id string, creds domain.Credentials) (*domain.Session, error)
	Register(ctx context.Context, id string, form domain.Registration) (*domain.Session, error)
	Logout(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Session, error)
}
