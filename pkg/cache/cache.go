// Package cache provides content-addressed caching for generated export
// artifacts. Because generation is deterministic, a key derived from the
// ordered closure and the export options fully identifies the output
// text: a hit can be returned verbatim.
//
// Backends: [FileCache] for the CLI, [RedisCache] for the server,
// [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLExport bounds how long generated export code stays cached. Keys are
// content-addressed, so expiration only reclaims space; it never serves
// stale output.
const TTLExport = 24 * time.Hour

// Cache stores opaque byte values under string keys with optional
// expiration. Implementations must treat a missing key as a miss, not an
// error.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
