package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T, ttl time.Duration) (*RedisGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisGuard(client, ttl), mr
}

func TestRedisGuardSuppressesRepeat(t *testing.T) {
	guard, _ := newGuard(t, time.Minute)
	ctx := context.Background()

	seen, err := guard.Seen(ctx, "met Sarah Johnson at Acme Corp")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = guard.Seen(ctx, "met Sarah Johnson at Acme Corp")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestRedisGuardDistinctMessages(t *testing.T) {
	guard, _ := newGuard(t, time.Minute)
	ctx := context.Background()

	seen, err := guard.Seen(ctx, "message one")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = guard.Seen(ctx, "message two")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRedisGuardWindowExpires(t *testing.T) {
	guard, mr := newGuard(t, time.Minute)
	ctx := context.Background()

	_, err := guard.Seen(ctx, "same message")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	seen, err := guard.Seen(ctx, "same message")
	require.NoError(t, err)
	assert.False(t, seen, "the window expired")
}

func TestRedisGuardErrorSurfaced(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	guard := NewRedisGuard(client, time.Minute)
	mr.Close()

	_, err := guard.Seen(context.Background(), "anything")
	require.Error(t, err)
}

func TestRedisGuardNilClient(t *testing.T) {
	guard := NewRedisGuard(nil, time.Minute)
	seen, err := guard.Seen(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestNopGuard(t *testing.T) {
	seen, err := NopGuard{}.Seen(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, seen)
}
