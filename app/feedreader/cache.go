package feedreader

import (
	"sync"
	"time"

	"github.com/AlphaNewsNetwork/alphanews/app/contentstore"
)

// entryCache holds list results for a fixed TTL so the feed is re-derived
// at most once per revalidation interval. A TTL of zero disables caching.
type entryCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedList
}

type cachedList struct {
	entries   []contentstore.Entry
	fetchedAt time.Time
}

func newEntryCache(ttl time.Duration) *entryCache {
	return &entryCache{
		ttl:     ttl,
		entries: make(map[string]cachedList),
	}
}

func (c *entryCache) get(key string) ([]contentstore.Entry, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.entries[key]
	if !ok || time.Since(cached.fetchedAt) > c.ttl {
		return nil, false
	}

	return cached.entries, true
}

func (c *entryCache) set(key string, entries []contentstore.Entry) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cachedList{entries: entries, fetchedAt: time.Now()}
}
