package ports

import (
	"context"

	cart "bakery-storefront/internal/features/cart/domain"
	"bakery-storefront/internal/features/checkout/domain"
	orders "bakery-storefront/internal/features/orders/domain"
	session "bakery-storefront/internal/features/session/domain"
)

// FlowRepository persists checkout flows and guards submissions. Secondary port.
type FlowRepository interface {
	// Load returns the stored flow, or a new one at the cart step.
	Load(ctx context.Context, sessionID string) (*domain.Flow, error)
	Save(ctx context.Context, f *domain.Flow) error
	// Lock takes the submission lock of a session and reports whether it was free.
	Lock(ctx context.Context, sessionID string) (bool, error)
	Unlock(ctx context.Context, sessionID string) error
}

// Cart is the part of the cart service checkout needs.
type Cart interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// OrderCreator submits orders to the backend.
type OrderCreator interface {
	Create(ctx context.Context, order orders.NewOrder, idempotencyKey string) (*orders.Order, error)
}

// CheckoutService is the primary port used by the checkout handler.
type CheckoutService interface {
	State(ctx context.Context, sess *session.Session) (*domain.View, error)
	Proceed(ctx context.Context, sess *session.Session) (*domain.View, error)
	Continue(ctx context.Context, sess *session.Session, f domain.Fulfillment) (*domain.View, error)
	Back(ctx context.Context, sess *session.Session) (*domain.View, error)
	Finalize(ctx context.Context, sess *session.Session, pm orders.PaymentMethod) (*domain.View, error)
	Close(ctx context.Context, sess *session.Session) (*domain.View, error)
}
