package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	shared.TenantRepository[Product]
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Product, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]Product, error)
}
