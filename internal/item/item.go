// Package item implements the cached item collection: a persistent store
// fronted by a single cache entry holding the whole collection.
package item

import (
	"context"
	"time"
)

// Item is the single persisted record type.
type Item struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Store is the persistent side. Insert assigns the id; Delete of an
// unknown id succeeds.
type Store interface {
	Insert(ctx context.Context, name string) (Item, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Item, error)
}

// Cache is a byte-value store with per-key expiration. Get reports a miss
// as ok=false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
