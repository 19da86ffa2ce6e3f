package shared

import (
	"context"
)

// EventPublisher publishes domain events after their originating atomic
// group has committed. Publishing is best-effort; the ledger itself is the
// system of record.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// NoopEventPublisher discards all events
type NoopEventPublisher struct{}

// Publish implements EventPublisher
func (NoopEventPublisher) Publish(ctx context.Context, events ...DomainEvent) error {
	return nil
}
