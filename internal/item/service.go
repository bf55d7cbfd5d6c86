package item

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

const (
	DefaultCacheKey = "items"
	DefaultCacheTTL = 60 * time.Second

	// DeletedMessage is returned by Delete whether or not the id matched.
	DeletedMessage = "Item deleted"
)

type Options struct {
	CacheKey string
	CacheTTL time.Duration
}

// Service lists items through the cache and invalidates the cached
// collection after every write. Concurrent misses may each query the store.
type Service struct {
	store Store
	cache Cache
	key   string
	ttl   time.Duration
}

func NewService(store Store, cache Cache, opts Options) *Service {
	if opts.CacheKey == "" {
		opts.CacheKey = DefaultCacheKey
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	return &Service{store: store, cache: cache, key: opts.CacheKey, ttl: opts.CacheTTL}
}

// Create stores a new item and drops the cached collection. A failed
// invalidation fails the call even though the item was stored.
func (s *Service) Create(ctx context.Context, name string) (Item, error) {
	it, err := s.store.Insert(ctx, name)
	if err != nil {
		return Item{}, opErr("store insert", err)
	}
	if err := s.invalidate(ctx); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		return "", opErr("store delete", err)
	}
	if err := s.invalidate(ctx); err != nil {
		return "", err
	}
	return DeletedMessage, nil
}

// List returns the cached collection when present, otherwise reads the
// store and caches the result for the configured TTL.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	data, ok, err := s.cache.Get(ctx, s.key)
	if err != nil {
		return nil, opErr("cache get", err)
	}
	if ok {
		var items []Item
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, opErr("cache decode", err)
		}
		log.Printf("[itemd][cache] hit key=%s items=%d", s.key, len(items))
		return nonNil(items), nil
	}

	items, err := s.store.List(ctx)
	if err != nil {
		return nil, opErr("store list", err)
	}
	items = nonNil(items)

	data, err = json.Marshal(items)
	if err != nil {
		return nil, opErr("cache encode", err)
	}
	if err := s.cache.Set(ctx, s.key, data, s.ttl); err != nil {
		return nil, opErr("cache set", err)
	}
	log.Printf("[itemd][store] miss key=%s items=%d ttl=%s", s.key, len(items), s.ttl)
	return items, nil
}

func (s *Service) invalidate(ctx context.Context) error {
	return opErr("cache delete", s.cache.Delete(ctx, s.key))
}

// nonNil keeps an empty collection encoding as [] rather than null.
func nonNil(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return items
}
