package sheets

import (
	"sync"
	"time"
)

// DefaultTTL is how long a dataset read stays fresh. Mutations invalidate
// the touched key explicitly; there is no coherency across sessions.
const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	rows      [][]string
	expiresAt time.Time
}

// Cache is a short-TTL read-through cache keyed by logical dataset
// (tickets, bookings, settlements, history).
type Cache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache creates a cache with the given TTL; ttl <= 0 uses DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached rows for key if they are still fresh.
func (c *Cache) Get(key string) ([][]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.rows, true
}

// Set stores rows under key for one TTL window.
func (c *Cache) Set(key string, rows [][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{rows: rows, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops a key so the next read fetches truth from the store.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
