package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "roster:all", []string{"a", "b"})
	if _, ok := store.Get(ctx, "roster:all"); !ok {
		t.Fatalf("expected cached value")
	}

	store.Delete(ctx, "roster:all")
	if _, ok := store.Get(ctx, "roster:all"); ok {
		t.Fatalf("expected value to be deleted")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)

	store.Set(ctx, "stats:eafc", 1)
	store.Set(ctx, "stats:competitive", 2)
	store.Set(ctx, "roster:all", 3)

	store.DeletePrefix(ctx, "stats:")

	if _, ok := store.Get(ctx, "stats:eafc"); ok {
		t.Fatalf("expected stats:eafc to be evicted")
	}
	if _, ok := store.Get(ctx, "stats:competitive"); ok {
		t.Fatalf("expected stats:competitive to be evicted")
	}
	if _, ok := store.Get(ctx, "roster:all"); !ok {
		t.Fatalf("expected roster:all to survive")
	}
}

func TestStore_GetOrLoad_CachesLoaderResult(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		value, err := store.GetOrLoad(ctx, "roster:all", loader)
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if value != "loaded" {
			t.Fatalf("unexpected value: %v", value)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected one load, got %d", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return nil, fmt.Errorf("backend down")
	}

	for i := 0; i < 2; i++ {
		if _, err := store.GetOrLoad(ctx, "roster:all", loader); err == nil {
			t.Fatalf("expected loader error")
		}
	}

	if got := loads.Load(); got != 2 {
		t.Fatalf("expected errors to be retried, got %d loads", got)
	}
}
