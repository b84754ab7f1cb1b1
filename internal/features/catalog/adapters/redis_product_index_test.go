package adapters

import (
	"context"
	"testing"
	"time"

	"bakery-storefront/internal/core/cache"
	"bakery-storefront/internal/features/catalog/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisProductIndex(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "")
	require.NoError(t, err)
	defer c.Close()

	index := NewRedisProductIndex(c, time.Hour)
	ctx := context.Background()

	_, err = index.Lookup(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	products := []domain.Product{
		{ID: 1, Name: "Tarta", Price: decimal.NewFromFloat(75)},
		{ID: 2, Name: "Pan", Price: decimal.NewFromFloat(45.5)},
	}
	require.NoError(t, index.Remember(ctx, products))

	p, err := index.Lookup(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Pan", p.Name)
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(45.5)))

	mr.FastForward(2 * time.Hour)
	_, err = index.Lookup(ctx, 2)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
