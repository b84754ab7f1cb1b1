package adapters

import (
	"context"
	"testing"
	"time"

	"bakery-storefront/internal/core/cache"
	"bakery-storefront/internal/features/session/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "bakery:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	return NewRedisStore(c), mr
}

func TestRedisStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	sess, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.ID)
	assert.False(t, sess.IsAuthenticated)
	assert.Nil(t, sess.User)
}

func TestRedisStore_SaveLoadDelete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := domain.New("abc")
	sess.Login("token-1", domain.User{ID: 3, Name: "Luis", Email: "luis@example.com", Role: domain.RoleAdmin})

	require.NoError(t, store.Save(ctx, sess, time.Minute))
	assert.True(t, mr.Exists("bakery:session:abc"))

	got, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	assert.True(t, got.IsAdmin())
	assert.Equal(t, "token-1", got.Token)

	mr.FastForward(2 * time.Minute)
	expired, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, expired.IsAuthenticated)

	require.NoError(t, store.Save(ctx, sess, time.Minute))
	require.NoError(t, store.Delete(ctx, "abc"))
	assert.False(t, mr.Exists("bakery:session:abc"))
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set("bakery:session:abc", "{not json"))

	_, err := store.Load(context.Background(), "abc")
	assert.Error(t, err)
}
