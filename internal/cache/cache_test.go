// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock is advanced manually by tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New[string]("test", ttl)
	c.now = clock.Now
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("key1", "value1")

	clock.Advance(61 * time.Second)
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if stats := c.GetStats(); stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
}

func TestCacheSlidingExpiry(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("key1", "value1")

	for i := 0; i < 3; i++ {
		clock.Advance(45 * time.Second)
		if _, ok := c.Get("key1"); !ok {
			t.Fatalf("access %d: entry expired despite use", i)
		}
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	calls := 0
	create := func() string {
		calls++
		return "fresh"
	}

	if v, created := c.GetOrCreate("s", create); !created || v != "fresh" {
		t.Errorf("first call = (%q, %v), want (fresh, true)", v, created)
	}
	if _, created := c.GetOrCreate("s", create); created {
		t.Error("second call should reuse the entry")
	}

	clock.Advance(2 * time.Minute)
	if _, created := c.GetOrCreate("s", create); !created {
		t.Error("expired entry should be recreated")
	}
	if calls != 2 {
		t.Errorf("create calls = %d, want 2", calls)
	}
}

func TestCacheDelete(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("key1", "value1")

	if !c.Delete("key1") {
		t.Error("Delete should report an existing key")
	}
	if c.Delete("key1") {
		t.Error("Delete should report a missing key")
	}
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
}

func TestCacheCleanup(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("old", "a")
	clock.Advance(30 * time.Second)
	c.Set("new", "b")
	clock.Advance(45 * time.Second)

	if removed := c.Cleanup(); removed != 1 {
		t.Errorf("Cleanup() = %d, want 1", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheHitRate(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	if c.HitRate() != 0 {
		t.Error("empty cache hit rate should be 0")
	}

	c.Set("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	if got := c.HitRate(); got < 66 || got > 67 {
		t.Errorf("HitRate() = %v, want ~66.7", got)
	}
}

func TestCacheServeStops(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.interval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Serve(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not stop")
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.GetOrCreate("shared", func() string { return "v" })
			c.Get("shared")
		}()
	}
	wg.Wait()

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
