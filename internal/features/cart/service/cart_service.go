package service

import (
	"context"
	"fmt"

	"bakery-storefront/internal/core/logger"
	"bakery-storefront/internal/features/cart/domain"
	"bakery-storefront/internal/features/cart/ports"

	"go.uber.org/zap"
)

// CartService applies cart operations and persists the result.
type CartService struct {
	repo     ports.Repository
	products ports.ProductFinder
}

// NewCartService creates a new CartService.
func NewCartService(repo ports.Repository, products ports.ProductFinder) *CartService {
	return &CartService{repo: repo, products: products}
}

// Get returns the visitor's cart.
func (s *CartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	c, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return c, nil
}

// Add resolves the product and puts it in the cart.
func (s *CartService) Add(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	product, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		c.Add(*product)
		logger.Named("cart").Debug("Product added",
			zap.Int("product_id", product.ID),
			zap.Int("items", c.Count()),
		)
		return nil
	})
}

// Increment raises a line's quantity.
func (s *CartService) Increment(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		return c.Increment(productID)
	})
}

// Decrement lowers a line's quantity, keeping at least one unit.
func (s *CartService) Decrement(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		return c.Decrement(productID)
	})
}

// Remove drops a line.
func (s *CartService) Remove(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *domain.Cart) error {
		return c.Remove(productID)
	})
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	return nil
}

func (s *CartService) mutate(ctx context.Context, sessionID string, op func(*domain.Cart) error) (*domain.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(c); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return c, nil
}
