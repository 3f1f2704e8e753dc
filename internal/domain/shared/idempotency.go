package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which events a subscriber already handled, so
// the audit log does not record a redelivered event twice
type IdempotencyStore interface {
	// MarkProcessed reports true when key was not marked before
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, key string) (bool, error)
	Close() error
}

// IdempotencyConfig controls duplicate suppression. Keys expire after TTL.
type IdempotencyConfig struct {
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig keeps keys for a day
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{TTL: 24 * time.Hour, Enabled: true}
}
