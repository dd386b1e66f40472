// Package testutils provides test helpers: scripted dice, combatant fixtures
// and an in-memory Redis.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/redis"
)

// CreateTestRedisClient creates an in-memory Redis client for testing
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	cleanup := func() {
		mr.Close()
	}

	return client, cleanup
}

// CreateTestRedisClientWithContext creates an in-memory Redis client with data population function
func CreateTestRedisClientWithContext(t *testing.T, setupFunc func(mr *miniredis.Miniredis)) (redis.Client, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	// Allow test to populate Redis with initial data
	if setupFunc != nil {
		setupFunc(mr)
	}

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	cleanup := func() {
		mr.Close()
	}

	return client, cleanup
}
