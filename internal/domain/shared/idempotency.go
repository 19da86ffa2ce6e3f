package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys that have already produced a
// committed ledger entry, so a retried checkout cannot apply twice.
type IdempotencyStore interface {
	// MarkProcessed marks a request key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already
	// processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a request key has already been processed.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for checkout idempotency
type IdempotencyConfig struct {
	// TTL is how long a processed request key is remembered.
	// Default: 24 hours
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
