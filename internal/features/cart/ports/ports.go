package ports

import (
	"context"

	"bakery-storefront/internal/features/cart/domain"
	catalog "bakery-storefront/internal/features/catalog/domain"
)

// Repository persists carts per visitor session. Secondary port.
type Repository interface {
	// Load returns the stored cart, or an empty one.
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, c *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// ProductFinder resolves a product id to its current listing.
type ProductFinder interface {
	FindProduct(ctx context.Context, id int) (*catalog.Product, error)
}

// CartService is the primary port used by the handler and by checkout.
type CartService interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Add(ctx context.Context, sessionID string, productID int) (*domain.Cart, error)
	Increment(ctx context.Context, sessionID string, productID int) (*domain.Cart, error)
	Decrement(ctx context.Context, sessionID string, productID int) (*domain.Cart, error)
	Remove(ctx context.Context, sessionID string, productID int) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}
