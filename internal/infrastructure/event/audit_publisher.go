package event

import (
	"context"
	"encoding/json"

	"github.com/poslite/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogPublisher writes domain events to the structured log as an audit
// trail. Services publish events only after their atomic group committed,
// so every logged event corresponds to durable state.
type AuditLogPublisher struct {
	logger *zap.Logger
}

// NewAuditLogPublisher creates a publisher writing to the given logger
func NewAuditLogPublisher(logger *zap.Logger) *AuditLogPublisher {
	return &AuditLogPublisher{logger: logger.Named("audit")}
}

// Publish logs each event with its identity fields and JSON payload
func (p *AuditLogPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		fields := []zap.Field{
			zap.String("event_id", e.EventID().String()),
			zap.String("event_type", e.EventType()),
			zap.String("aggregate_id", e.AggregateID().String()),
			zap.String("tenant_id", e.TenantID().String()),
			zap.Time("occurred_at", e.OccurredAt()),
		}
		if payload, err := json.Marshal(e); err == nil {
			fields = append(fields, zap.ByteString("payload", payload))
		}
		p.logger.Info("domain event", fields...)
	}
	return nil
}

// Ensure AuditLogPublisher implements EventPublisher
var _ shared.EventPublisher = (*AuditLogPublisher)(nil)
