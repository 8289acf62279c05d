package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesync/internal/notesync/adapters/cache"
	"notesync/internal/notesync/config"
	cachePorts "notesync/internal/notesync/ports/cache"
)

var (
	_ cachePorts.Cache = (*cache.RedisCache)(nil)
	_ cachePorts.Cache = cache.NopCache{}
)

func redisConfig(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s := miniredis.RunT(t)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return s, &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		PoolSize:       2,
		ProfileTTL:     10 * time.Minute,
	}
}

func TestRedisCache_Operations(t *testing.T) {
	s, cfg := redisConfig(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	value, err := redisCache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, redisCache.Set(ctx, "profile:1", `{"id":"1"}`, 0))
	assert.Equal(t, 10*time.Minute, s.TTL("profile:1"))

	require.NoError(t, redisCache.Set(ctx, "profile:2", "x", time.Minute))
	assert.Equal(t, time.Minute, s.TTL("profile:2"))

	value, err = redisCache.Get(ctx, "profile:1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, value)

	require.NoError(t, redisCache.Delete(ctx, "profile:1"))
	assert.False(t, s.Exists("profile:1"))

	s.FastForward(2 * time.Minute)
	value, err = redisCache.Get(ctx, "profile:2")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCache_ConnectionFailure(t *testing.T) {
	_, cfg := redisConfig(t)
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.ConnectTimeout = 100 * time.Millisecond

	redisCache, err := cache.NewRedisCache(context.Background(), cfg)

	assert.Error(t, err)
	assert.Nil(t, redisCache)
	assert.Contains(t, err.Error(), cache.ErrorFailedToConnect)
}

func TestRedisCache_ServerError(t *testing.T) {
	s, cfg := redisConfig(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisCache.Close() })

	s.SetError("ERR broken")
	_, err = redisCache.Get(ctx, "profile:1")
	assert.ErrorContains(t, err, cache.ErrorFailedToGet)
}

func TestNopCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewNopCache()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	value, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, value)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Close())
}
