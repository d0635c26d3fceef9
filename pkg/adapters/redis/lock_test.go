package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/pkg/adapters/redis"
)

func TestLocker_AcquireAndRelease(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "lattice:")

	unlock, err := locker.Lock(ctx, "doc-1", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lattice:lock:doc-1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("lattice:lock:doc-1"))
}

func TestLocker_BlocksUntilReleased(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "lattice:")

	unlock, err := locker.Lock(ctx, "doc-1", 5*time.Second)
	require.NoError(t, err)

	// A second acquisition must time out while the first holds the lock.
	shortCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(shortCtx, "doc-1", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// After release it succeeds.
	require.NoError(t, unlock(ctx))
	unlock2, err := locker.Lock(ctx, "doc-1", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}

func TestLocker_UnlockIsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "lattice:")

	unlock, err := locker.Lock(ctx, "doc-1", 5*time.Second)
	require.NoError(t, err)

	// Simulate the lock expiring and someone else acquiring it.
	mr.Del("lattice:lock:doc-1")
	require.NoError(t, mr.Set("lattice:lock:doc-1", "someone-else"))

	// Our unlock must not delete the other holder's lock.
	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("lattice:lock:doc-1"))
}
