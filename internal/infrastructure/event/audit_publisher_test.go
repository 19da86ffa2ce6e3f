package event

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
	Detail string `json:"detail"`
}

func TestAuditLogPublisher_Publish(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewAuditLogPublisher(zap.New(core))

	tenantID := uuid.New()
	aggregateID := uuid.New()
	event := &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ledger.entry.recorded", aggregateID, tenantID),
		Detail:          "sale",
	}

	err := publisher.Publish(context.Background(), event)
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "domain event", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "ledger.entry.recorded", fields["event_type"])
	assert.Equal(t, aggregateID.String(), fields["aggregate_id"])
	assert.Equal(t, tenantID.String(), fields["tenant_id"])
	assert.Contains(t, fields["payload"].(string), `"detail":"sale"`)
}

func TestAuditLogPublisher_PublishNothing(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	publisher := NewAuditLogPublisher(zap.New(core))

	require.NoError(t, publisher.Publish(context.Background()))
	assert.Zero(t, logs.Len())
}
