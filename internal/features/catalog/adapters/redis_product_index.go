package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bakery-storefront/internal/core/cache"
	"bakery-storefront/internal/features/catalog/domain"
)

const productKeyPrefix = "product:"

// RedisProductIndex implements ports.ProductIndex on top of the cache port.
type RedisProductIndex struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisProductIndex creates a new RedisProductIndex.
func NewRedisProductIndex(c cache.Cache, ttl time.Duration) *RedisProductIndex {
	return &RedisProductIndex{cache: c, ttl: ttl}
}

// Remember stores every product under its id.
func (r *RedisProductIndex) Remember(ctx context.Context, products []domain.Product) error {
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal product %d: %w", p.ID, err)
		}
		if err := r.cache.Set(ctx, productKeyPrefix+strconv.Itoa(p.ID), data, r.ttl); err != nil {
			return fmt.Errorf("failed to index product %d: %w", p.ID, err)
		}
	}
	return nil
}

// Lookup returns the remembered product or domain.ErrProductNotFound.
func (r *RedisProductIndex) Lookup(ctx context.Context, id int) (*domain.Product, error) {
	data, err := r.cache.Get(ctx, productKeyPrefix+strconv.Itoa(id))
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up product %d: %w", id, err)
	}

	var p domain.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product %d: %w", id, err)
	}
	return &p, nil
}
