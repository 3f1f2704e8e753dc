// Package cache connects to Redis and builds the stores that can live either
// in Redis or in process memory.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// pingTimeout bounds the startup connectivity check
const pingTimeout = 5 * time.Second

// NewRedisClient connects to Redis. It returns a nil client when Redis is
// disabled, and with allowFallback also when it cannot be reached, so
// callers switch to their in-memory implementations.
func NewRedisClient(cfg config.RedisConfig, allowFallback bool, logger *zap.Logger) (redis.UniversalClient, error) {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory stores")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if !allowFallback {
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
		}
		logger.Warn("Redis unreachable, falling back to in-memory stores. "+
			"Token revocation and SSO state are not shared between instances.",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return nil, nil
	}

	logger.Info("Connected to Redis", zap.String("addr", cfg.Addr()), zap.Int("db", cfg.DB))
	return client, nil
}

// NewIdempotencyStore returns a Redis store for a non-nil client and an
// in-memory one otherwise
func NewIdempotencyStore(client redis.UniversalClient) shared.IdempotencyStore {
	if client == nil {
		return NewInMemoryIdempotencyStore()
	}
	return NewRedisIdempotencyStore(client, "")
}
