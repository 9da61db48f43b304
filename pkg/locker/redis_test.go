package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testLockKey = "content:refresh:lock"

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	// Create an in-memory Redis instance for testing
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestRedisLocker_Acquire_Success(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	locker := NewRedisLocker(client, zap.NewNop())

	acquired, err := locker.Acquire(context.Background(), testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired, "First acquisition should succeed")
}

func TestRedisLocker_Acquire_AlreadyHeld(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	logger := zap.NewNop()
	locker1 := NewRedisLocker(client, logger)
	locker2 := NewRedisLocker(client, logger)

	ctx := context.Background()
	ttl := 5 * time.Second

	// First instance acquires the lock
	acquired1, err := locker1.Acquire(ctx, testLockKey, ttl)
	require.NoError(t, err)
	assert.True(t, acquired1, "First acquisition should succeed")

	// Second instance should fail to acquire
	acquired2, _ := locker2.Acquire(ctx, testLockKey, ttl)
	assert.False(t, acquired2, "Second acquisition should fail when lock is held")
}

func TestRedisLocker_Release_Success(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	locker := NewRedisLocker(client, zap.NewNop())

	ctx := context.Background()
	ttl := 5 * time.Second

	acquired, err := locker.Acquire(ctx, testLockKey, ttl)
	require.NoError(t, err)
	require.True(t, acquired)

	err = locker.Release(ctx, testLockKey)
	require.NoError(t, err)

	// Should be able to acquire again after release
	acquired2, err := locker.Acquire(ctx, testLockKey, ttl)
	require.NoError(t, err)
	assert.True(t, acquired2, "Should be able to acquire after release")
}

func TestRedisLocker_Release_NotOwned(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	logger := zap.NewNop()
	locker1 := NewRedisLocker(client, logger)
	locker2 := NewRedisLocker(client, logger)

	ctx := context.Background()
	ttl := 5 * time.Second

	acquired, err := locker1.Acquire(ctx, testLockKey, ttl)
	require.NoError(t, err)
	require.True(t, acquired)

	// Releasing a lock we don't own is a no-op
	err = locker2.Release(ctx, testLockKey)
	require.NoError(t, err)

	// The owner can still release
	err = locker1.Release(ctx, testLockKey)
	require.NoError(t, err)
}

func TestRedisLocker_ConcurrentAcquisition(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	logger := zap.NewNop()
	ttl := 2 * time.Second

	// Simulate 5 instances trying to acquire the lock concurrently
	const numInstances = 5
	results := make(chan bool, numInstances)
	ctx := context.Background()

	for i := 0; i < numInstances; i++ {
		go func() {
			locker := NewRedisLocker(client, logger)
			acquired, _ := locker.Acquire(ctx, testLockKey, ttl)
			results <- acquired
		}()
	}

	successCount := 0
	for i := 0; i < numInstances; i++ {
		if <-results {
			successCount++
		}
	}

	// Exactly one instance should have acquired the lock
	assert.Equal(t, 1, successCount, "Exactly one instance should acquire the lock")
}

func TestRedisLocker_ContextCancellation(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	locker := NewRedisLocker(client, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	acquired, err := locker.Acquire(ctx, testLockKey, 5*time.Second)
	assert.Error(t, err)
	assert.False(t, acquired)
}
