package ports

import (
	"context"

	"bakery-storefront/internal/features/catalog/domain"
)

// ProductGateway lists products from the bakery backend. Secondary port.
type ProductGateway interface {
	// ListProducts returns one page, by category when q.Category is set.
	ListProducts(ctx context.Context, q domain.Query) (*domain.Page, error)
}

// ProductIndex remembers products already shown to visitors so they can be
// resolved by id (the backend has no single-product endpoint).
type ProductIndex interface {
	Remember(ctx context.Context, products []domain.Product) error
	Lookup(ctx context.Context, id int) (*domain.Product, error)
}

// CatalogService is the primary port used by the handler and by the cart.
type CatalogService interface {
	ListProducts(ctx context.Context, q domain.Query) (*domain.Page, error)
	FindProduct(ctx context.Context, id int) (*domain.Product, error)
}
