package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/shared"
)

// EntryQueryService reads committed ledger history
type EntryQueryService struct {
	entryRepo ledger.EntryRepository
}

// NewEntryQueryService creates a new EntryQueryService
func NewEntryQueryService(entryRepo ledger.EntryRepository) *EntryQueryService {
	return &EntryQueryService{entryRepo: entryRepo}
}

// GetByID retrieves a single ledger entry
func (s *EntryQueryService) GetByID(ctx context.Context, tenantID, entryID uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	resp := ToEntryResponse(entry)
	return &resp, nil
}

// List retrieves ledger entries with pagination, newest first
func (s *EntryQueryService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]EntryResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "occurred_at"
		filter.OrderDir = "desc"
	}

	entries, err := s.entryRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return ToEntryResponses(entries), nil
}
