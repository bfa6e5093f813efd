// Package cache stores transform results keyed by content hashes.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys come from a [Keyer] so that every caller derives the same key from the
// same inputs; [ScopedKeyer] adds a namespace prefix on top.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// TTLMerge is how long merged documents stay cached. Entries are keyed by
// content hashes, so the TTL only bounds disk and memory usage.
const TTLMerge = 7 * 24 * time.Hour
