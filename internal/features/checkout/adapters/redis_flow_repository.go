package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bakery-storefront/internal/core/cache"
	"bakery-storefront/internal/features/checkout/domain"
)

const (
	flowKeyPrefix = "checkout:"
	lockKeyPrefix = "checkout:lock:"
)

// RedisFlowRepository implements ports.FlowRepository using the cache port.
type RedisFlowRepository struct {
	cache   cache.Cache
	ttl     time.Duration
	lockTTL time.Duration
}

// NewRedisFlowRepository creates a new RedisFlowRepository. lockTTL must outlive
// the slowest order submission.
func NewRedisFlowRepository(c cache.Cache, ttl, lockTTL time.Duration) *RedisFlowRepository {
	return &RedisFlowRepository{cache: c, ttl: ttl, lockTTL: lockTTL}
}

// Load returns the stored flow or a new one.
func (r *RedisFlowRepository) Load(ctx context.Context, sessionID string) (*domain.Flow, error) {
	data, err := r.cache.Get(ctx, flowKeyPrefix+sessionID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return domain.NewFlow(sessionID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout flow: %w", err)
	}

	f := domain.NewFlow(sessionID)
	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout flow: %w", err)
	}
	return f, nil
}

// Save stores the flow.
func (r *RedisFlowRepository) Save(ctx context.Context, f *domain.Flow) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout flow: %w", err)
	}
	if err := r.cache.Set(ctx, flowKeyPrefix+f.SessionID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save checkout flow: %w", err)
	}
	return nil
}

// Lock takes the submission lock with SETNX.
func (r *RedisFlowRepository) Lock(ctx context.Context, sessionID string) (bool, error) {
	ok, err := r.cache.SetNX(ctx, lockKeyPrefix+sessionID, []byte("1"), r.lockTTL)
	if err != nil {
		return false, fmt.Errorf("failed to lock checkout: %w", err)
	}
	return ok, nil
}

// Unlock releases the submission lock.
func (r *RedisFlowRepository) Unlock(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, lockKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to unlock checkout: %w", err)
	}
	return nil
}
