package ports

import (
	"context"

	"bakery-storefront/internal/features/orders/domain"
)

// OrderGateway reads and mutates orders in the bakery backend.
// This is a Secondary Port (Driven Port).
type OrderGateway interface {
	// Create submits an order. idempotencyKey is sent so a retried submission is not duplicated.
	Create(ctx context.Context, order domain.NewOrder, idempotencyKey string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Order, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id int) error
}

// Viewer is who is asking for orders.
type Viewer struct {
	UserID  int
	IsAdmin bool
}

// OrderService is the primary port used by the orders handler.
type OrderService interface {
	ListMine(ctx context.Context, viewer Viewer) ([]domain.Order, error)
	Get(ctx context.Context, viewer Viewer, id int) (*domain.Order, error)
	AdminList(ctx context.Context, filter domain.Filter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	Delete(ctx context.Context, id int) error
}
