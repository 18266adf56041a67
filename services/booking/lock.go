package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// lockTTL bounds how long a crashed booking attempt can hold a slot hostage.
const lockTTL = 30 * time.Second

// SlotLocker serializes concurrent commits of the same slot. Acquire returns
// ok=false when another booking attempt currently holds the slot.
type SlotLocker interface {
	Acquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

// RedisSlotLocker arbitrates slot commits through a SETNX key per slot,
// giving the check-then-act sequence a single-writer point.
type RedisSlotLocker struct {
	Client *redis.Client
}

func NewRedisSlotLocker(client *redis.Client) *RedisSlotLocker {
	return &RedisSlotLocker{Client: client}
}

func (l *RedisSlotLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	ok, err := l.Client.SetNX(ctx, key, "locked", lockTTL).Result()
	if err != nil {
		return nil, false, fmt.Errorf("slot lock acquire failed: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	release := func() {
		// Best effort: the TTL reclaims the lock if this delete is lost.
		l.Client.Del(context.Background(), key)
	}
	return release, true, nil
}

func slotLockKey(date, clock string) string {
	return fmt.Sprintf("slotlock:%sT%s", date, clock)
}
