package redis_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-kitchen/internal/infrastructure/config"
	"smart-kitchen/internal/infrastructure/redis"
	"smart-kitchen/internal/testhelpers"
)

func TestNewClient_Disabled(t *testing.T) {
	client, err := redis.NewClient(config.RedisConfig{Enabled: false, Addr: "localhost:6379"})
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.NoError(t, redis.Ping(context.Background(), nil))
}

func TestNewClient_Unreachable(t *testing.T) {
	_, err := redis.NewClient(config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}

func TestPing_Container(t *testing.T) {
	client := testhelpers.NewRedisClient(t)
	assert.NoError(t, redis.Ping(context.Background(), client))
}
