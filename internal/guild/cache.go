package guild

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/PhoenixBot_Go/internal/metrics"
)

// CacheConfig sizes a settings cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache sizing
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// cachedEntry wraps a value with version metadata for cache invalidation
type cachedEntry[V any] struct {
	Version  string
	Value    V
	CachedAt time.Time
}

// settingsCache provides an in-memory LRU cache for guild settings lookups
// with time-based expiration and version-based invalidation.
type settingsCache[V any] struct {
	name   string
	lru    *expirable.LRU[string, *cachedEntry[V]]
	hits   atomic.Int64
	misses atomic.Int64
}

// newSettingsCache creates a cache reporting lookups under name
func newSettingsCache[V any](name string, cfg CacheConfig) *settingsCache[V] {
	return &settingsCache[V]{
		name: name,
		lru:  expirable.NewLRU[string, *cachedEntry[V]](cfg.Size, nil, cfg.TTL),
	}
}

// Get returns (value, true) if found and the version matches.
// Entries with a mismatched version are removed.
func (c *settingsCache[V]) Get(key string) (V, bool) {
	var zero V
	entry, found := c.lru.Get(key)
	if found && entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		found = false
	}
	if !found {
		c.misses.Add(1)
		metrics.CacheLookups.WithLabelValues(c.name, metrics.CacheMiss).Inc()
		return zero, false
	}

	c.hits.Add(1)
	metrics.CacheLookups.WithLabelValues(c.name, metrics.CacheHit).Inc()
	return entry.Value, true
}

// Set stores a value with the current schema version
func (c *settingsCache[V]) Set(key string, value V) {
	c.lru.Add(key, &cachedEntry[V]{
		Version:  CacheSchemaVersion,
		Value:    value,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a key
func (c *settingsCache[V]) Invalidate(key string) {
	c.lru.Remove(key)
}

// Clear removes all entries
func (c *settingsCache[V]) Clear() {
	c.lru.Purge()
}

// GetStats returns hit/miss counters and the current size
func (c *settingsCache[V]) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
