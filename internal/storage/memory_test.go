package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := NewMemory()

	if _, err := mem.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := mem.Set(ctx, "cart:anonymous", `{"items":[]}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := mem.Get(ctx, "cart:anonymous")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != `{"items":[]}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := mem.Del(ctx, "cart:anonymous", "never-existed"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if mem.Len() != 0 {
		t.Fatalf("expected empty store, have %d keys", mem.Len())
	}
}

func TestMemoryKeyers(t *testing.T) {
	t.Parallel()

	mem := NewMemory()
	if got := mem.DeviceKey("d1", "user"); got != "device:d1:user" {
		t.Fatalf("unexpected device key %q", got)
	}
	if got := mem.CartKey("anonymous"); got != "cart:anonymous" {
		t.Fatalf("unexpected cart key %q", got)
	}
}
