package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T, cfg Config) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	s := miniredis.RunT(t)
	if cfg.URL == "" {
		cfg.Addr = s.Addr()
	} else {
		cfg.URL = "redis://" + s.Addr() + "/0"
	}

	r, err := Init(context.Background(), cfg)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	return New(r), s
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c, s := newTestCache(t, Config{})
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "items"); err != nil || ok {
		t.Fatalf("empty get ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "items", []byte(`[{"_id":"1","name":"a"}]`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := s.TTL("items"); ttl != time.Minute {
		t.Fatalf("ttl=%s want 1m", ttl)
	}

	b, ok, err := c.Get(ctx, "items")
	if err != nil || !ok {
		t.Fatalf("get ok=%v err=%v", ok, err)
	}
	if string(b) != `[{"_id":"1","name":"a"}]` {
		t.Fatalf("get=%q", string(b))
	}

	if err := c.Delete(ctx, "items"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Exists("items") {
		t.Fatalf("key still present after delete")
	}
}

func TestRedisCache_Expires(t *testing.T) {
	c, s := newTestCache(t, Config{})
	ctx := context.Background()

	if err := c.Set(ctx, "items", []byte("[]"), 60*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.FastForward(61 * time.Second)

	if _, ok, err := c.Get(ctx, "items"); err != nil || ok {
		t.Fatalf("after expiry ok=%v err=%v", ok, err)
	}
}

func TestRedisCache_DefaultTTLAndPrefix(t *testing.T) {
	c, s := newTestCache(t, Config{URL: "set-below", Prefix: "itemd", DefaultTTL: 30 * time.Second})
	ctx := context.Background()

	if err := c.Set(ctx, "items", []byte("[]"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !s.Exists("itemd:items") {
		t.Fatalf("expected prefixed key")
	}
	if ttl := s.TTL("itemd:items"); ttl != 30*time.Second {
		t.Fatalf("ttl=%s want 30s", ttl)
	}
}

func TestInit_Unreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	if _, err := Init(context.Background(), Config{Addr: addr, PingTimeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected ping error for closed server")
	}
}

func TestConfig_BadURL(t *testing.T) {
	if _, err := Init(context.Background(), Config{URL: "http://nope"}); err == nil {
		t.Fatalf("expected url parse error")
	}
}
