// Package cache provides artifact caching for the render pipeline.
//
// Rendering a relation graph shells through Graphviz, which dominates the
// pipeline's runtime for anything beyond trivial blueprints. The cache
// stores finished artifacts keyed by a content hash of the blueprint and
// the render options, so unchanged blueprints re-render for free.
//
// Two implementations are provided: [FileCache] for CLI usage and
// [NullCache] to disable caching. Both are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts as opaque byte blobs.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
