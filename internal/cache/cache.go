// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/topiclens/internal/metrics"
)

// DefaultCleanupInterval is how often Serve sweeps expired entries.
const DefaultCleanupInterval = time.Minute

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a thread-safe TTL cache. Reads through Get and GetOrCreate
// extend an entry's lifetime, so idle entries expire ttl after their last
// use.
type Cache[V any] struct {
	mu       sync.RWMutex
	entries  map[string]entry[V]
	ttl      time.Duration
	interval time.Duration
	name     string
	now      func() time.Time
	stats    Stats
}

// Stats tracks cache performance.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// New creates a cache whose entries expire ttl after last use. name labels
// the cache_* metrics.
//
//	sessions := cache.New[*Session]("session", 30*time.Minute)
//	s, created := sessions.GetOrCreate(id, newSession)
func New[V any](name string, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries:  make(map[string]entry[V]),
		ttl:      ttl,
		interval: DefaultCleanupInterval,
		name:     name,
		now:      time.Now,
	}
}

// Get returns the value for key and refreshes its expiry.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lookupLocked(key)
	if !ok {
		c.recordMissLocked()
		return v, false
	}
	c.recordHitLocked()
	return v, true
}

// GetOrCreate returns the value for key, creating and storing it with
// create when absent or expired. created reports whether create ran.
func (c *Cache[V]) GetOrCreate(key string, create func() V) (value V, created bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.lookupLocked(key); ok {
		c.recordHitLocked()
		return v, false
	}
	c.recordMissLocked()

	v := create()
	c.entries[key] = entry[V]{value: v, expiresAt: c.now().Add(c.ttl)}
	c.updateSizeLocked()
	return v, true
}

// lookupLocked must be called with mu held for writing.
func (c *Cache[V]) lookupLocked(key string) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	now := c.now()
	if now.After(e.expiresAt) {
		delete(c.entries, key)
		c.recordEvictionsLocked(1)
		c.updateSizeLocked()
		var zero V
		return zero, false
	}

	e.expiresAt = now.Add(c.ttl)
	c.entries[key] = e
	return e.value, true
}

// Set stores value under key.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
	c.updateSizeLocked()
}

// Delete removes key and reports whether it was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	c.recordEvictionsLocked(1)
	c.updateSizeLocked()
	return true
}

// Len returns the number of stored entries, expired ones included until
// the next sweep.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the statistics.
func (c *Cache[V]) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the hit rate as a percentage.
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Serve sweeps expired entries until ctx is done. It implements
// suture.Service.
func (c *Cache[V]) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Cleanup()
		}
	}
}

// String names the service for the supervisor.
func (c *Cache[V]) String() string {
	return "cache-" + c.name
}

// Cleanup removes every expired entry and returns how many were removed.
func (c *Cache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}

	c.recordEvictionsLocked(removed)
	c.updateSizeLocked()
	c.stats.LastCleanup = now
	return removed
}

func (c *Cache[V]) recordHitLocked() {
	c.stats.Hits++
	metrics.CacheHits.WithLabelValues(c.name).Inc()
}

func (c *Cache[V]) recordMissLocked() {
	c.stats.Misses++
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}

func (c *Cache[V]) recordEvictionsLocked(n int) {
	if n == 0 {
		return
	}
	c.stats.Evictions += int64(n)
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
}

func (c *Cache[V]) updateSizeLocked() {
	c.stats.TotalKeys = int64(len(c.entries))
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.entries)))
}
