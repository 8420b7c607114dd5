package cache

import (
	"context"
	"encoding/json"
	"time"
)

// JSONCache stores JSON-encoded values under a key namespace
type JSONCache struct {
	store     Store
	namespace string
	ttl       time.Duration
}

// NewJSONCache creates a cache whose keys live under namespace
func NewJSONCache(store Store, namespace string, ttl time.Duration) *JSONCache {
	return &JSONCache{store: store, namespace: namespace, ttl: ttl}
}

func (c *JSONCache) key(id string) string {
	return c.namespace + ":" + id
}

// Get decodes the cached value into dest and reports whether it was present
func (c *JSONCache) Get(ctx context.Context, id string, dest any) (bool, error) {
	raw, ok, err := c.store.Get(ctx, c.key(id))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Treat undecodable entries as misses; the next Set replaces them
		_ = c.store.Delete(ctx, c.key(id))
		return false, nil
	}
	return true, nil
}

// Set encodes and stores value
func (c *JSONCache) Set(ctx context.Context, id string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.key(id), raw, c.ttl)
}

// Invalidate drops the cached value
func (c *JSONCache) Invalidate(ctx context.Context, id string) error {
	return c.store.Delete(ctx, c.key(id))
}
