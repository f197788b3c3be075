// internal/adapters/redis_adapter/cache_test.go
package redis_adapter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askumaar/stocktrail-be/internal/adapters/redis_adapter"
	"github.com/askumaar/stocktrail-be/internal/core/domain"
	"github.com/askumaar/stocktrail-be/internal/core/ports"
	"github.com/askumaar/stocktrail-be/test/helpers"
)

func newTestCache(t *testing.T) (*helpers.TestRedis, ports.CacheRepository) {
	t.Helper()
	tr := helpers.SetupTestRedis(t)
	return tr, redis_adapter.NewCache(tr.Client, time.Hour, helpers.TestLogger())
}

func TestCache_SetAndGet(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	item := helpers.CreateTestItem()
	key := redis_adapter.BuildKey(redis_adapter.PrefixItem, item.ID.String())

	require.NoError(t, cache.Set(ctx, key, item))

	var got domain.Item
	require.NoError(t, cache.Get(ctx, key, &got))
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.Name, got.Name)
}

func TestCache_GetMiss(t *testing.T) {
	_, cache := newTestCache(t)

	var got domain.Item
	err := cache.Get(context.Background(), "item:missing", &got)
	assert.ErrorIs(t, err, redis_adapter.ErrCacheMiss)
}

func TestCache_TTLExpiry(t *testing.T) {
	tr, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetWithTTL(ctx, "dash:main", map[string]int{"total": 4}, time.Minute))

	// miniredis only advances time when told to.
	tr.Server.FastForward(2 * time.Minute)

	var got map[string]int
	err := cache.Get(ctx, "dash:main", &got)
	assert.ErrorIs(t, err, redis_adapter.ErrCacheMiss)
}

func TestCache_Delete(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "item:a", 1))
	require.NoError(t, cache.Set(ctx, "item:b", 2))

	require.NoError(t, cache.Delete(ctx, "item:a", "item:b"))

	var got int
	assert.ErrorIs(t, cache.Get(ctx, "item:a", &got), redis_adapter.ErrCacheMiss)
	assert.ErrorIs(t, cache.Get(ctx, "item:b", &got), redis_adapter.ErrCacheMiss)

	// Deleting nothing is a no-op, not an error.
	assert.NoError(t, cache.Delete(ctx))
}

func TestCache_DeletePattern(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, redis_adapter.BuildKey(redis_adapter.PrefixMovement, "recent"), 1))
	require.NoError(t, cache.Set(ctx, redis_adapter.BuildKey(redis_adapter.PrefixMovement, "page", "2"), 2))
	require.NoError(t, cache.Set(ctx, redis_adapter.BuildKey(redis_adapter.PrefixDashboard, "main"), 3))

	require.NoError(t, cache.DeletePattern(ctx, redis_adapter.BuildKey(redis_adapter.PrefixMovement, "*")))

	var got int
	assert.ErrorIs(t, cache.Get(ctx, "mov:recent", &got), redis_adapter.ErrCacheMiss)
	assert.ErrorIs(t, cache.Get(ctx, "mov:page:2", &got), redis_adapter.ErrCacheMiss)
	assert.NoError(t, cache.Get(ctx, "dash:main", &got))
}

func TestCache_GetOrSet(t *testing.T) {
	t.Run("miss_fetches_and_stores", func(t *testing.T) {
		_, cache := newTestCache(t)
		ctx := context.Background()

		fetchCalls := 0
		fetch := func() (interface{}, error) {
			fetchCalls++
			return map[string]string{"status": "Available"}, nil
		}

		var got map[string]string
		require.NoError(t, cache.GetOrSet(ctx, "item:x", &got, fetch, time.Minute))
		assert.Equal(t, "Available", got["status"])
		assert.Equal(t, 1, fetchCalls)

		// Second call is served from cache.
		var again map[string]string
		require.NoError(t, cache.GetOrSet(ctx, "item:x", &again, fetch, time.Minute))
		assert.Equal(t, 1, fetchCalls)
	})

	t.Run("fetch_error_propagates", func(t *testing.T) {
		_, cache := newTestCache(t)

		var got map[string]string
		err := cache.GetOrSet(context.Background(), "item:y", &got, func() (interface{}, error) {
			return nil, errors.New("db down")
		}, time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestCache_Ping(t *testing.T) {
	tr, cache := newTestCache(t)

	assert.NoError(t, cache.Ping(context.Background()))

	tr.Server.Close()
	assert.Error(t, cache.Ping(context.Background()))
}

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "item", redis_adapter.BuildKey(redis_adapter.PrefixItem))
	assert.Equal(t, "item:abc", redis_adapter.BuildKey(redis_adapter.PrefixItem, "abc"))
	assert.Equal(t, "mov:page:2", redis_adapter.BuildKey(redis_adapter.PrefixMovement, "page", "2"))
}
