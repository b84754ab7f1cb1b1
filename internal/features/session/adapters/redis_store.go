package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bakery-storefront/internal/core/cache"
	"bakery-storefront/internal/features/session/domain"
)

const sessionKeyPrefix = "session:"

// RedisStore implements ports.Store using the cache port.
type RedisStore struct {
	cache cache.Cache
}

// NewRedisStore creates a new RedisStore.
func NewRedisStore(c cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

// Load returns the stored session or an unauthenticated one.
func (r *RedisStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.cache.Get(ctx, sessionKeyPrefix+id)
	if errors.Is(err, cache.ErrCacheMiss) {
		return domain.New(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	s := domain.New(id)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}

// Save stores the session for ttl.
func (r *RedisStore) Save(ctx context.Context, s *domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.cache.Set(ctx, sessionKeyPrefix+s.ID, data, ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the stored session.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, sessionKeyPrefix+id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
