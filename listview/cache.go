/*
cache.go - In-memory snapshot of the last successful fetch

PURPOSE:
  Holds the most recent list result for one view so filtering never needs a
  round trip. The cache is replaced wholesale and invalidated after every
  successful mutation; it is never patched incrementally. That trades one
  extra round trip for guaranteed agreement with the server.

SEE ALSO:
  - controller.go: The only writer of the cache
  - filter.go: Reads snapshots, never the cache directly
*/
package listview

import (
	"sync"
	"time"
)

// Cache holds the last successfully fetched list for a single view.
// Snapshot returns copies so callers cannot mutate cached rows.
type Cache struct {
	mu        sync.RWMutex
	items     []ListItem
	fetchedAt time.Time
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Set replaces the cached list wholesale and stamps the fetch time.
func (c *Cache) Set(items []ListItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]ListItem, len(items))
	for i, it := range items {
		c.items[i] = it.Clone()
	}
	c.fetchedAt = time.Now()
}

// Snapshot returns a defensive copy of the cached list in original order.
func (c *Cache) Snapshot() []ListItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ListItem, len(c.items))
	for i, it := range c.items {
		out[i] = it.Clone()
	}
	return out
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// FetchedAt returns when the cache was last replaced; zero if never.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

// Invalidate clears the cache to empty.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.fetchedAt = time.Time{}
}
