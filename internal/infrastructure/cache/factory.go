package cache

import (
	"fmt"

	"github.com/foodhub/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Backend bundles the Redis client, when one is in use, with a Store built on it
type Backend struct {
	Client *redis.Client
	Store  Store
	close  func() error
}

// Close releases the Redis client or stops the in-memory sweeper
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// FactoryOption configures NewBackend
type FactoryOption func(*factoryOptions)

type factoryOptions struct {
	allowInMemoryFallback bool
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// process memory. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(o *factoryOptions) {
		o.allowInMemoryFallback = allow
	}
}

// NewBackend connects to Redis when enabled, otherwise or on failure uses
// process memory.
func NewBackend(cfg config.RedisConfig, logger *zap.Logger, opts ...FactoryOption) (*Backend, error) {
	o := factoryOptions{allowInMemoryFallback: true}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Enabled {
		client, err := NewRedisClient(cfg)
		if err == nil {
			logger.Info("using Redis cache", zap.String("addr", cfg.Addr()))
			return &Backend{
				Client: client,
				Store:  NewRedisStore(client, "foodhub:"),
				close:  client.Close,
			}, nil
		}
		if !o.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required but unavailable: %w", err)
		}
		logger.Warn("Redis unavailable, falling back to in-memory cache. "+
			"Idempotency keys and revoked tokens are not shared across instances.",
			zap.Error(err),
		)
	}

	mem := NewInMemoryStore(0)
	return &Backend{Store: mem, close: mem.Close}, nil
}
