package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/poslite/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEntryRepository implements the read side of EntryRepository using
// GORM. Writes go through the unit of work so the entry, its lines, and
// the stock and balance mutations land in one transaction.
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByIDForTenant finds a ledger entry by ID within a tenant
func (r *GormEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Entry, error) {
	var model models.EntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", lineOrder).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds ledger entries for a tenant matching the filter
func (r *GormEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledger.Entry, error) {
	query := r.db.WithContext(ctx).
		Preload("Lines", lineOrder).
		Where("tenant_id = ?", tenantID)

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "counterparty_id":
			query = query.Where("counterparty_id = ?", value)
		}
	}

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "occurred_at"
	}
	orderDir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		orderDir = "DESC"
	}

	var rows []models.EntryModel
	if err := query.Order(orderBy + " " + orderDir).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

// FindByPeriod returns entries that occurred within [from, to), ordered
// ascending by occurrence time
func (r *GormEntryRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]ledger.Entry, error) {
	var rows []models.EntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", lineOrder).
		Where("tenant_id = ? AND occurred_at >= ? AND occurred_at < ?", tenantID, from, to).
		Order("occurred_at ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

// FindByCounterparty returns the counterparty's entries ordered ascending
// by occurrence time, entries sharing a timestamp by insertion order
func (r *GormEntryRepository) FindByCounterparty(ctx context.Context, tenantID, counterpartyID uuid.UUID) ([]ledger.Entry, error) {
	var rows []models.EntryModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", lineOrder).
		Where("tenant_id = ? AND counterparty_id = ?", tenantID, counterpartyID).
		Order("occurred_at ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

// CountByProduct reports how many entries carry a line for the product
func (r *GormEntryRepository) CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EntryLineModel{}).
		Joins("JOIN ledger_entries ON ledger_entries.id = ledger_entry_lines.entry_id").
		Where("ledger_entries.tenant_id = ? AND ledger_entry_lines.product_id = ?", tenantID, productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCounterparty reports how many entries reference the counterparty
func (r *GormEntryRepository) CountByCounterparty(ctx context.Context, tenantID, counterpartyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EntryModel{}).
		Where("tenant_id = ? AND counterparty_id = ?", tenantID, counterpartyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func lineOrder(db *gorm.DB) *gorm.DB {
	return db.Order("line_no ASC")
}

func toDomainEntries(rows []models.EntryModel) []ledger.Entry {
	entries := make([]ledger.Entry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries
}

// Ensure GormEntryRepository implements EntryRepository
var _ ledger.EntryRepository = (*GormEntryRepository)(nil)
