package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores raw byte values in Redis with a per-key expiration.
type Cache struct {
	rdb        redis.Cmdable
	prefix     string
	defaultTTL time.Duration
}

func New(r *Redis) *Cache {
	ttl := r.Cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &Cache{
		rdb:        r.Client,
		prefix:     r.Cfg.Prefix,
		defaultTTL: ttl,
	}
}

// Key applies the configured prefix. Without a prefix the key is used as is.
func (c *Cache) Key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get reports ok=false with a nil error on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.Key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	return c.rdb.Set(ctx, c.Key(key), data, ttl).Err()
}

// Delete removes key. A missing key is not an error.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, c.Key(key)).Err()
}
