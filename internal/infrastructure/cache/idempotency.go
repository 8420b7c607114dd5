package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRequestInFlight is returned when another request holds the same key
var ErrRequestInFlight = errors.New("a request with this idempotency key is in progress")

const pendingMarker = "pending"

// StoredResponse is the first response recorded for an idempotency key
type StoredResponse struct {
	StatusCode  int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// IdempotencyStore records responses so a retried request replays the first
// outcome instead of executing twice
type IdempotencyStore struct {
	store Store
	ttl   time.Duration
}

// NewIdempotencyStore creates an idempotency store remembering keys for ttl
func NewIdempotencyStore(store Store, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{store: store, ttl: ttl}
}

func idempotencyKey(key string) string {
	return "idempotency:" + key
}

// Reserve claims key. It returns (nil, nil) when the caller now owns the key,
// the stored response when the key already completed, or ErrRequestInFlight.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (*StoredResponse, error) {
	ok, err := s.store.SetNX(ctx, idempotencyKey(key), []byte(pendingMarker), s.ttl)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, nil
	}

	raw, found, err := s.store.Get(ctx, idempotencyKey(key))
	if err != nil {
		return nil, err
	}
	if !found {
		// Expired between the two calls; claim again
		return s.Reserve(ctx, key)
	}
	if string(raw) == pendingMarker {
		return nil, ErrRequestInFlight
	}

	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("corrupt idempotency record %s: %w", key, err)
	}
	return &resp, nil
}

// Complete stores the response for a reserved key
func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp StoredResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, idempotencyKey(key), raw, s.ttl)
}

// Release frees a reserved key so the request may be retried
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.store.Delete(ctx, idempotencyKey(key))
}
