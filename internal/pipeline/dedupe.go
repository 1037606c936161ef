package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard suppresses repeat processing of an identical inbound message.
// Seen reports whether the message was already handled within the guard's
// window and marks it handled otherwise.
type Guard interface {
	Seen(ctx context.Context, message string) (bool, error)
}

// NopGuard never suppresses anything.
type NopGuard struct{}

func (NopGuard) Seen(ctx context.Context, message string) (bool, error) {
	return false, nil
}

// RedisGuard is a Redis-backed dedupe window keyed on the message hash.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGuard creates a guard with the given window. A nil client or
// non-positive ttl yields a guard that suppresses nothing.
func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl}
}

// Seen marks the message handled and reports whether it already was. The
// key holds only a hash, never the message text.
func (g *RedisGuard) Seen(ctx context.Context, message string) (bool, error) {
	if g == nil || g.client == nil || g.ttl <= 0 {
		return false, nil
	}
	sum := sha256.Sum256([]byte(message))
	key := "leadpipe:dedupe:" + hex.EncodeToString(sum[:])
	set, err := g.client.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}
