package payments

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper guards against duplicate webhook delivery. Seen returns true when
// the event id was already claimed. Forget releases a claim so the provider's
// retry of an event we failed to apply is not swallowed as a duplicate.
type Deduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Forget(ctx context.Context, eventID string) error
}

type RedisDeduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDeduper(rdb *redis.Client, ttl time.Duration) *RedisDeduper {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisDeduper{rdb: rdb, ttl: ttl}
}

// Seen claims the event id atomically; SETNX makes duplicate deliveries lose.
func (d *RedisDeduper) Seen(ctx context.Context, eventID string) (bool, error) {
	ok, err := d.rdb.SetNX(ctx, "webhook:event:"+eventID, 1, d.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (d *RedisDeduper) Forget(ctx context.Context, eventID string) error {
	return d.rdb.Del(ctx, "webhook:event:"+eventID).Err()
}
