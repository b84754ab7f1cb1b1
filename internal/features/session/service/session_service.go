package service

import (
	"context"
	"fmt"
	"time"

	"bakery-storefront/internal/core/logger"
	"bakery-storefront/internal/features/session/domain"
	"bakery-storefront/internal/features/session/ports"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SessionService owns visitor sessions: it authenticates through the backend
// and persists the resulting state in the session store.
type SessionService struct {
	store     ports.Store
	gateway   ports.AuthGateway
	ttl       time.Duration
	listeners []ports.LoginListener
	leavers   []ports.LogoutListener
	now       func() time.Time
}

// NewSessionService creates a new SessionService. ttl bounds every stored session.
func NewSessionService(store ports.Store, gateway ports.AuthGateway, ttl time.Duration) *SessionService {
	return &SessionService{
		store:   store,
		gateway: gateway,
		ttl:     ttl,
		now:     time.Now,
	}
}

// AddLoginListener registers l to be told about successful logins.
// Listeners must be registered before serving.
func (s *SessionService) AddLoginListener(l ports.LoginListener) {
	s.listeners = append(s.listeners, l)
}

// AddLogoutListener registers l to be told about logouts and teardowns.
// Listeners must be registered before serving.
func (s *SessionService) AddLogoutListener(l ports.LogoutListener) {
	s.leavers = append(s.leavers, l)
}

// Load returns the visitor's session.
func (s *SessionService) Load(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load session: %w", err)
	}
	return sess, nil
}

// Login authenticates the visitor and stores the token and user.
func (s *SessionService) Login(ctx context.Context, id string, creds domain.Credentials) (*domain.Session, error) {
	result, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, id, result)
}

// Register creates the account and logs the visitor in. When the backend does
// not hand out a token on registration, a login follows.
func (s *SessionService) Register(ctx context.Context, id string, form domain.Registration) (*domain.Session, error) {
	result, err := s.gateway.Register(ctx, form)
	if err != nil {
		return nil, err
	}

	if result.Token == "" {
		result, err = s.gateway.Login(ctx, domain.Credentials{Email: form.Email, Password: form.Password})
		if err != nil {
			return nil, err
		}
	}

	return s.establish(ctx, id, result)
}

func (s *SessionService) establish(ctx context.Context, id string, result *domain.AuthResult) (*domain.Session, error) {
	sess, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Login(result.Token, result.User)
	if err := s.store.Save(ctx, sess, s.ttlFor(result.Token)); err != nil {
		return nil, fmt.Errorf("service: failed to save session: %w", err)
	}

	logger.Named("session").Info("Visitor logged in",
		zap.Int("user_id", sess.UserID()),
		zap.String("role", string(result.User.Role)),
	)

	for _, l := range s.listeners {
		if err := l.OnLogin(ctx, sess); err != nil {
			logger.Named("session").Warn("Login listener failed", zap.Error(err))
		}
	}

	return sess, nil
}

// Logout resets the session to unauthenticated defaults.
func (s *SessionService) Logout(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to logout: %w", err)
	}

	for _, l := range s.leavers {
		if err := l.OnLogout(ctx, id); err != nil {
			logger.Named("session").Warn("Logout listener failed", zap.Error(err))
		}
	}
	return nil
}

// Teardown logs out the session carried by ctx. It is registered as the
// gateway's unauthorized hook.
func (s *SessionService) Teardown(ctx context.Context) {
	id, ok := domain.IDFrom(ctx)
	if !ok {
		return
	}
	if err := s.Logout(ctx, id); err != nil {
		logger.Named("session").Error("Failed to tear down session", zap.Error(err))
		return
	}
	logger.Named("session").Info("Session torn down after backend rejected the token")
}

// UpdateProfile applies a partial profile change. The role never changes.
func (s *SessionService) UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.Session, error) {
	sess, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sess.UpdateProfile(patch); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sess, s.ttlFor(sess.Token)); err != nil {
		return nil, fmt.Errorf("service: failed to save session: %w", err)
	}
	return sess, nil
}

// ttlFor shortens the configured TTL to the token's expiry when the token is a JWT.
// The signature is not checked here: the backend verifies every token it receives.
func (s *SessionService) ttlFor(token string) time.Duration {
	if token == "" {
		return s.ttl
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return s.ttl
	}

	remaining := claims.ExpiresAt.Time.Sub(s.now())
	if remaining < time.Second {
		return time.Second
	}
	if remaining < s.ttl {
		return remaining
	}
	return s.ttl
}
