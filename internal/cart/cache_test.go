package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	c := &Cart{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Items:  []Item{{ID: uuid.New(), VehicleID: uuid.New(), Quantity: 2}},
	}
	require.NoError(t, cache.Set(ctx, c))
	assert.True(t, mr.Exists(cacheKey(c.ID)))

	ttl := mr.TTL(cacheKey(c.ID))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.Less(t, ttl, 20*time.Minute)

	got, err := cache.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.UserID, got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)

	require.NoError(t, cache.Delete(ctx, c.ID))
	_, err = cache.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)
	_, err := cache.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)
	id := uuid.New()
	require.NoError(t, mr.Set(cacheKey(id), `{"id":`))

	_, err := cache.Get(context.Background(), id)
	assert.ErrorContains(t, err, "unmarshal cart failed")
}

func TestRedisCache_ServerDown(t *testing.T) {
	cache, mr := setupTestRedis(t)
	mr.Close()

	_, err := cache.Get(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
