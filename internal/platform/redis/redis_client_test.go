package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	srv := miniredis.RunT(t)

	t.Setenv("REDIS_HOST", srv.Host())
	t.Setenv("REDIS_PORT", srv.Port())
	t.Setenv("REDIS_PASSWORD", "")

	rdb, err := NewRedisClient()
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := rdb.Get(context.Background(), "k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_ConnectionFailure(t *testing.T) {
	t.Setenv("REDIS_HOST", "127.0.0.1")
	t.Setenv("REDIS_PORT", "1") // nothing listens here
	t.Setenv("REDIS_PASSWORD", "")

	_, err := NewRedisClient()
	assert.Error(t, err)
}
