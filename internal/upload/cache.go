package upload

import (
	"sync"
	"time"
)

// ResponseCache suppresses literal duplicate submissions (client retries)
// within a short window. It is NOT the durable idempotency mechanism; that
// is the (owner, image_url) uniqueness in the catalog. Implementations may
// be backed by a shared cache in a multi-instance deployment.
type ResponseCache interface {
	Get(key string) (*Result, bool)
	Put(key string, result *Result)
}

type cacheEntry struct {
	result   *Result
	cachedAt time.Time
}

// TTLCache is the in-process, best-effort implementation: entries live for
// the configured TTL and are pruned on every write. It is local to one
// server instance.
type TTLCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *TTLCache) Get(key string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.cachedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.result, true
}

func (c *TTLCache) Put(key string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Sprzątanie starych wpisów przy każdym zapisie, żeby mapa nie rosła
	now := time.Now()
	for k, e := range c.entries {
		if now.Sub(e.cachedAt) > c.ttl {
			delete(c.entries, k)
		}
	}

	c.entries[key] = cacheEntry{result: result, cachedAt: now}
}
