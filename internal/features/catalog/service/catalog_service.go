package service

import (
	"context"
	"errors"

	"bakery-storefront/internal/core/logger"
	"bakery-storefront/internal/core/metrics"
	"bakery-storefront/internal/features/catalog/domain"
	"bakery-storefront/internal/features/catalog/ports"

	"go.uber.org/zap"
)

// CatalogService lists products and degrades to the bundled catalog on backend failure.
type CatalogService struct {
	gateway  ports.ProductGateway
	index    ports.ProductIndex
	fallback []domain.Product
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(gateway ports.ProductGateway, index ports.ProductIndex, fallback []domain.Product) *CatalogService {
	return &CatalogService{
		gateway:  gateway,
		index:    index,
		fallback: fallback,
	}
}

// ListProducts returns one catalog page. Backend failures are not surfaced: the
// bundled catalog is filtered and paged locally and the page is flagged degraded.
func (s *CatalogService) ListProducts(ctx context.Context, q domain.Query) (*domain.Page, error) {
	q = q.Normalize()

	page, err := s.gateway.ListProducts(ctx, q)
	if err != nil {
		logger.Named("catalog").Warn("Serving bundled catalog",
			zap.String("name", q.Name),
			zap.String("category", q.Category),
			zap.Error(err),
		)
		metrics.CatalogFallbacks.Inc()

		page = domain.Paginate(s.fallback, q)
		page.Degraded = true
		return page, nil
	}

	if err := s.index.Remember(ctx, page.Products); err != nil {
		logger.Named("catalog").Warn("Failed to index products", zap.Error(err))
	}

	return page, nil
}

// FindProduct resolves a product previously listed to a visitor, then the bundled catalog.
func (s *CatalogService) FindProduct(ctx context.Context, id int) (*domain.Product, error) {
	p, err := s.index.Lookup(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		logger.Named("catalog").Warn("Product index unavailable", zap.Int("product_id", id), zap.Error(err))
	}

	for i := range s.fallback {
		if s.fallback[i].ID == id {
			p := s.fallback[i]
			return &p, nil
		}
	}

	return nil, domain.ErrProductNotFound
}
