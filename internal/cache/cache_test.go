package cache_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/taskhive-backend/internal/cache"
)

// The cache must be safe to use with no Redis behind it: every method
// degrades to a no-op and Get always reports a miss.
func TestDisabledStore(t *testing.T) {
	s := cache.New(nil, zerolog.New(io.Discard), cache.WithTTL(time.Minute))
	ctx := context.Background()

	var dest struct{ Name string }
	if s.Get(ctx, s.Key("project", 1), &dest) {
		t.Fatalf("disabled store must always miss")
	}
	s.Set(ctx, s.Key("project", 1), map[string]string{"name": "x"})
	s.Invalidate(ctx, s.Key("project", 1))

	var nilStore *cache.Store
	if nilStore.Get(ctx, nilStore.Key("task", 2), &dest) {
		t.Fatalf("nil store must always miss")
	}
	nilStore.Set(ctx, "k", 1)
	nilStore.Invalidate(ctx, "k")
}

func TestKeyShape(t *testing.T) {
	s := cache.New(nil, zerolog.New(io.Discard), cache.WithPrefix("taskhive"))
	if got := s.Key("task", 42); got != "taskhive:task:42" {
		t.Fatalf("unexpected key: %q", got)
	}
}
