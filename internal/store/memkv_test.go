package store

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemKV_RoundTrip(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get on empty store: want ErrKeyNotFound, got %v", err)
	}

	if err := kv.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get after delete: want ErrKeyNotFound, got %v", err)
	}
}

func TestMemKV_CopiesValues(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()

	in := []byte("original")
	if err := kv.Set(ctx, "k", in); err != nil {
		t.Fatalf("Set: %v", err)
	}
	in[0] = 'X'

	got, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "original" {
		t.Errorf("stored value mutated via caller slice: %q", got)
	}

	got[0] = 'Y'
	again, err := kv.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(again) != "original" {
		t.Errorf("stored value mutated via returned slice: %q", again)
	}
}

func TestMemKV_ConcurrentAccess(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = kv.Set(ctx, "shared", []byte("value"))
				_, _ = kv.Get(ctx, "shared")
				_ = kv.Delete(ctx, "shared")
			}
		}()
	}
	wg.Wait()
}
