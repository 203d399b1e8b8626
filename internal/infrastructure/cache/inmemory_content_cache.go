package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryContentCache implements ContentCache with a mutex-guarded map.
// Suitable for single-instance deployments and testing; entries are not
// shared across processes.
type InMemoryContentCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	done    chan struct{}
	once    sync.Once
}

type inMemoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewInMemoryContentCache creates an in-memory content cache with a
// background sweep that evicts expired entries
func NewInMemoryContentCache() *InMemoryContentCache {
	c := &InMemoryContentCache{
		entries: make(map[string]inMemoryEntry),
		done:    make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get returns the cached payload and whether it was present
func (c *InMemoryContentCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set stores a payload with a TTL
func (c *InMemoryContentCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = inMemoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Delete removes a single entry
func (c *InMemoryContentCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Close stops the background sweep
func (c *InMemoryContentCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

// Len returns the number of stored entries, expired or not
func (c *InMemoryContentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemoryContentCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Ensure InMemoryContentCache implements ContentCache
var _ ContentCache = (*InMemoryContentCache)(nil)
