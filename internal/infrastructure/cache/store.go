// Package cache provides the key/value store behind token revocation,
// idempotency keys and the merchant statistics cache.
package cache

import (
	"context"
	"time"
)

// Store is a byte-valued key/value store with expiry
type Store interface {
	// Get returns the value and whether it was present
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX stores value only when key is absent and reports whether it did
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}
