package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bakery-storefront/internal/core/cache"
	"bakery-storefront/internal/features/cart/domain"
)

const cartKeyPrefix = "cart:"

// RedisRepository implements ports.Repository using the cache port.
type RedisRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisRepository creates a new RedisRepository. Carts expire after ttl of inactivity.
func NewRedisRepository(c cache.Cache, ttl time.Duration) *RedisRepository {
	return &RedisRepository{cache: c, ttl: ttl}
}

// Load returns the stored cart or an empty one.
func (r *RedisRepository) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.cache.Get(ctx, cartKeyPrefix+sessionID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return domain.New(sessionID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := domain.New(sessionID)
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return c, nil
}

// Save stores the cart.
func (r *RedisRepository) Save(ctx context.Context, c *domain.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := r.cache.Set(ctx, cartKeyPrefix+c.SessionID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the stored cart.
func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cartKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
