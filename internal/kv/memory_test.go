package kv

import (
	"context"
	"testing"
)

func TestMemoryStoreGetPut(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, found, err := store.Get(ctx, "role:alice"); err != nil || found {
		t.Fatalf("Get on empty store = found %v, err %v; want absent, nil", found, err)
	}

	if err := store.Put(ctx, "role:alice", "pro"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	val, found, err := store.Get(ctx, "role:alice")
	if err != nil || !found || val != "pro" {
		t.Fatalf("Get = %q found %v err %v; want pro, true, nil", val, found, err)
	}
}

func TestMemoryStoreIncr(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	for want := int64(1); want <= 3; want++ {
		got, err := store.Incr(ctx, "quota:alice:2026-01-23")
		if err != nil {
			t.Fatalf("Incr: %v", err)
		}
		if got != want {
			t.Fatalf("Incr = %d, want %d", got, want)
		}
	}

	val, found, _ := store.Get(ctx, "quota:alice:2026-01-23")
	if !found || val != "3" {
		t.Fatalf("counter value = %q found %v, want \"3\"", val, found)
	}
}
