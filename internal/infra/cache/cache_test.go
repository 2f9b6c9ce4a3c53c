package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

type searchParams struct {
	CityID int64  `json:"cityId"`
	Query  string `json:"q"`
}

type searchResult struct {
	IDs []int64 `json:"ids"`
}

func newTestCache(t *testing.T) (*BrowseCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewBrowseCache(client, "test", time.Minute, metrics.New("test", prometheus.NewRegistry())), mr
}

func TestBrowseCache_SetGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	params := searchParams{CityID: 1, Query: "arena"}

	var got searchResult
	key, hit, err := c.Get(ctx, "fields", params, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, key, searchResult{IDs: []int64{7, 8}}))

	_, hit, err = c.Get(ctx, "fields", params, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []int64{7, 8}, got.IDs)

	var other searchResult
	_, hit, err = c.Get(ctx, "fields", searchParams{CityID: 2}, &other)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestBrowseCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	params := searchParams{CityID: 1}

	var got searchResult
	key, _, err := c.Get(ctx, "fields", params, &got)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, key, searchResult{IDs: []int64{1}}))
	require.NoError(t, c.Invalidate(ctx))

	_, hit, err := c.Get(ctx, "fields", params, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

// Результат, посчитанный до Invalidate, не должен стать видимым после него
func TestBrowseCache_SetAfterInvalidateIsNotServed(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	params := searchParams{CityID: 1}

	var got searchResult
	key, hit, err := c.Get(ctx, "fields", params, &got)
	require.NoError(t, err)
	require.False(t, hit)

	// запись бронирования фиксируется, пока читатель еще строит ответ
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, key, searchResult{IDs: []int64{1, 2}}))

	var fresh searchResult
	key2, hit, err := c.Get(ctx, "fields", params, &fresh)
	require.NoError(t, err)
	assert.False(t, hit, "stale result must not be served under the new version")
	assert.NotEqual(t, key, key2)
	assert.Empty(t, fresh.IDs)
}

func TestBrowseCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	params := searchParams{CityID: 1}

	var got searchResult
	key, _, err := c.Get(ctx, "fields", params, &got)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, key, searchResult{IDs: []int64{1}}))
	mr.FastForward(2 * time.Minute)

	_, hit, err := c.Get(ctx, "fields", params, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestBrowseCache_RedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()

	var got searchResult
	key, _, err := c.Get(context.Background(), "fields", searchParams{}, &got)
	assert.ErrorIs(t, err, ErrCacheUnavailable)
	assert.Empty(t, key)
	assert.NoError(t, c.Set(context.Background(), key, searchResult{IDs: []int64{1}}))
}
