// Package cache provides fingerprint-keyed result storage with two
// backends, an in-process map and Redis, plus a best-effort wrapper
// that compresses values and swallows backend failures.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value store keyed by operation fingerprints.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put stores a value under key for ttl; a non-positive ttl means no
	// expiry.
	Put(ctx context.Context, key, value string, ttl time.Duration) error

	// DeleteByPrefix removes every key beginning with prefix and
	// returns how many were removed.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)

	// Close releases backend resources.
	Close() error
}
