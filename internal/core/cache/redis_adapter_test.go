package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://"+mr.Addr(), "bakery:")
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

func TestRedisAdapter_GetSet(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	err := adapter.Set(ctx, "cart:abc", []byte("value"), 10*time.Second)
	require.NoError(t, err)

	got, err := adapter.Get(ctx, "cart:abc")
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), got)

	// keys are namespaced
	assert.True(t, mr.Exists("bakery:cart:abc"))
}

func TestRedisAdapter_GetNotFound(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "non_existent_key")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "non_existent_key")
}

func TestRedisAdapter_SetNX(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	ok, err := adapter.SetNX(ctx, "lock", []byte("1"), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = adapter.SetNX(ctx, "lock", []byte("2"), time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := adapter.Get(ctx, "lock")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "delete_test", []byte("value"), 0))
	assert.NoError(t, adapter.Delete(ctx, "delete_test"))

	_, err := adapter.Get(ctx, "delete_test")
	assert.ErrorIs(t, err, ErrCacheMiss)

	// deleting again is fine
	assert.NoError(t, adapter.Delete(ctx, "delete_test"))
}

func TestRedisAdapter_TTL(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "ttl_test", []byte("expires_soon"), time.Second))

	_, err := adapter.Get(ctx, "ttl_test")
	assert.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = adapter.Get(ctx, "ttl_test")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	assert.NoError(t, adapter.Ping(context.Background()))
}

func TestRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("invalid://url", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}
