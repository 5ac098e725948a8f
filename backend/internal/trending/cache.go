package trending

import (
	"sync"
	"time"
)

// DefaultTTL governs how long a computed trending list stays fresh
const DefaultTTL = 15 * time.Minute

type cacheKey struct {
	window Window
	limit  int
}

type cacheEntry struct {
	list       []Hashtag
	computedAt time.Time
}

// Cache holds the last computed trending list per (window, limit) pair.
// Entries are replaced whole; readers never observe a partial update.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[cacheKey]cacheEntry

	now func() time.Time // swapped in tests
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[cacheKey]cacheEntry),
		now:     time.Now,
	}
}

// Fresh returns the cached list only while its age is below the TTL
func (c *Cache) Fresh(w Window, limit int) ([]Hashtag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey{window: w, limit: limit}]
	if !ok || c.now().Sub(entry.computedAt) >= c.ttl {
		return nil, false
	}
	return entry.list, true
}

// Stale returns the cached list regardless of age, for serving after a
// failed refresh.
func (c *Cache) Stale(w Window, limit int) ([]Hashtag, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey{window: w, limit: limit}]
	if !ok {
		return nil, false
	}
	return entry.list, true
}

// Put replaces the entry for (w, limit) and restamps its computation time
func (c *Cache) Put(w Window, limit int, list []Hashtag) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{window: w, limit: limit}] = cacheEntry{
		list:       list,
		computedAt: c.now(),
	}
}

// Clear drops every entry; used by tests and forced invalidation
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[cacheKey]cacheEntry)
}
