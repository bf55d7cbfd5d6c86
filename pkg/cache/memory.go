package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process TTL cache with the same surface as Cache.
// Expired entries are dropped lazily on read. Safe for concurrent use.
type Memory struct {
	mu         sync.RWMutex
	items      map[string]memItem
	defaultTTL time.Duration
}

type memItem struct {
	b   []byte
	exp time.Time
}

func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{items: make(map[string]memItem), defaultTTL: defaultTTL}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !it.exp.IsZero() && time.Now().After(it.exp) {
		m.mu.Lock()
		// re-check
		it2, ok2 := m.items[key]
		if ok2 && !it2.exp.IsZero() && time.Now().After(it2.exp) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	out := make([]byte, len(it.b))
	copy(out, it.b)
	return out, true, nil
}

func (m *Memory) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	b := make([]byte, len(data))
	copy(b, data)
	m.mu.Lock()
	m.items[key] = memItem{b: b, exp: exp}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}
