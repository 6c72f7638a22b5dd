package state

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// CacheMetrics tracks cache performance.
type CacheMetrics struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// TTLCache is a generic TTL cache. Result sets are replaced wholesale on
// every Set, and an expired entry reads as absent — which is exactly the
// fail-closed behavior booking resolution relies on.
type TTLCache[T any] struct {
	mu      sync.RWMutex
	items   map[string]cacheEntry[T]
	ttl     time.Duration
	name    string
	metrics CacheMetrics
	logger  *zap.Logger
}

type cacheEntry[T any] struct {
	value      T
	expiration int64
}

func NewTTLCache[T any](ttl time.Duration, name string, logger *zap.Logger) *TTLCache[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &TTLCache[T]{
		items:  make(map[string]cacheEntry[T]),
		ttl:    ttl,
		name:   name,
		logger: logger,
	}
	go c.cleanup()
	return c
}

// Set stores an item under key, replacing whatever was there.
func (c *TTLCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheEntry[T]{
		value:      value,
		expiration: time.Now().Add(c.ttl).UnixNano(),
	}
	c.metrics.Sets++

	c.logger.Debug("Cache set",
		zap.String("cache", c.name),
		zap.String("key", key),
		zap.Duration("ttl", c.ttl),
	)
}

func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, found := c.items[key]
	if !found || time.Now().UnixNano() > item.expiration {
		c.metrics.Misses++
		var zero T
		c.logger.Debug("Cache miss",
			zap.String("cache", c.name),
			zap.String("key", key),
		)
		return zero, false
	}

	c.metrics.Hits++
	return item.value, true
}

func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *TTLCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheEntry[T])
	c.logger.Info("Cache cleared", zap.String("cache", c.name))
}

func (c *TTLCache[T]) Metrics() CacheMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics
}

// cleanup runs periodically to remove expired items.
func (c *TTLCache[T]) cleanup() {
	ticker := time.NewTicker(c.ttl / 2)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now().UnixNano()
		expired := 0
		for key, item := range c.items {
			if now > item.expiration {
				delete(c.items, key)
				expired++
			}
		}
		if expired > 0 {
			c.logger.Info("Cache cleanup",
				zap.String("cache", c.name),
				zap.Int("expired_items", expired),
				zap.Int("remaining_items", len(c.items)),
			)
		}
		c.mu.Unlock()
	}
}
