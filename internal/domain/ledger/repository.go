package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/shared"
)

// EntryRepository defines read access to the ledger. Entries are written
// only through the UnitOfWork as part of an atomic group and are never
// updated or deleted afterwards.
type EntryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Entry, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Entry, error)
	// FindByPeriod returns entries that occurred within [from, to),
	// ordered ascending by occurrence time.
	FindByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]Entry, error)
	// FindByCounterparty returns the counterparty's entries ordered
	// ascending by occurrence time, the ordering the statement and aging
	// algorithms require.
	FindByCounterparty(ctx context.Context, tenantID, counterpartyID uuid.UUID) ([]Entry, error)
	// CountByProduct reports how many entries reference a product, used to
	// block deletion of referenced products.
	CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error)
	// CountByCounterparty reports how many entries reference a
	// counterparty, used to block deletion of referenced counterparties.
	CountByCounterparty(ctx context.Context, tenantID, counterpartyID uuid.UUID) (int64, error)
}
