package eventcache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a redis fast path for webhook redeliveries. It only ever
// short-circuits events already committed by the store transaction, which
// stays the authoritative idempotency guard.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: 72 * time.Hour,
	}
}

// Processed reports whether the key was already marked. Redis errors are
// treated as "not seen" so the database path still runs.
func (c *Cache) Processed(ctx context.Context, key string) bool {
	n, err := c.rdb.Exists(ctx, c.key(key)).Result()
	if err != nil {
		log.Printf("eventcache: exists failed: %v", err)
		return false
	}
	return n > 0
}

// MarkProcessed records the key after the transaction commits. Best effort.
func (c *Cache) MarkProcessed(ctx context.Context, key string) {
	if err := c.rdb.Set(ctx, c.key(key), 1, c.ttl).Err(); err != nil {
		log.Printf("eventcache: set failed: %v", err)
	}
}

func (c *Cache) key(key string) string {
	return "webhook:processed:" + key
}
