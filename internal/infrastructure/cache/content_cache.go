package cache

import (
	"context"
	"time"
)

// ContentCache stores rendered upstream content payloads keyed by request
// path. A miss is not an error.
type ContentCache interface {
	// Get returns the cached payload and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores a payload with a TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error
	// Close releases any underlying resources.
	Close() error
}
