package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	shared.TenantRepository[Customer]
	// FindDebtors returns customers carrying a positive balance.
	FindDebtors(ctx context.Context, tenantID uuid.UUID) ([]Customer, error)
}

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	shared.TenantRepository[Supplier]
	// FindDebtors returns suppliers the business still owes.
	FindDebtors(ctx context.Context, tenantID uuid.UUID) ([]Supplier, error)
}
