package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_TTL(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v"), 20*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}

	b, ok, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || string(b) != "v" {
		t.Fatalf("ok=%v b=%q", ok, string(b))
	}

	time.Sleep(30 * time.Millisecond)
	_, ok, err = m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get2: %v", err)
	}
	if ok {
		t.Fatalf("expected expired key")
	}
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()

	if err := m.Set(ctx, "items", []byte("[]"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := m.Delete(ctx, "items"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "items"); ok {
		t.Fatalf("expected key to be gone after delete")
	}

	// deleting a missing key is fine
	if err := m.Delete(ctx, "items"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()

	_ = m.Set(ctx, "k", []byte("abc"), 0)
	b, _, _ := m.Get(ctx, "k")
	b[0] = 'x'

	b2, _, _ := m.Get(ctx, "k")
	if string(b2) != "abc" {
		t.Fatalf("stored value mutated: %q", string(b2))
	}
}
