package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog. It is the aggregate
// root for pricing, stock level, and cost basis. Stock is a signed count:
// sales decrement it, purchase receipts increment it, and the ledger applier
// rejects any sale that would push it below zero. Negative stock can only
// appear through manual edits or restored data and is excluded from cost
// weighting rather than repaired.
type Product struct {
	shared.TenantAggregateRoot
	Code          string
	Name          string
	Category      string
	UnitPrice     decimal.Decimal // selling price per unit
	PurchasePrice decimal.Decimal // current cost basis
	Stock         int64
	MinStock      int64
	// Box tier: both fields set or both absent. A full multiple of
	// QuantityPerBox units sells for BoxPrice per box instead of per unit.
	QuantityPerBox *int64
	BoxPrice       *decimal.Decimal
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, code, name string, unitPrice, purchasePrice decimal.Decimal) (*Product, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrInvalidTenant
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if unitPrice.IsNegative() || purchasePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                code,
		Name:                name,
		UnitPrice:           unitPrice,
		PurchasePrice:       purchasePrice,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, category string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = name
	p.Category = category
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetPricing sets the selling price and minimum stock threshold
func (p *Product) SetPricing(unitPrice decimal.Decimal, minStock int64) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if minStock < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	p.UnitPrice = unitPrice
	p.MinStock = minStock
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetBoxTier configures box-tier pricing. Both values are required together;
// use ClearBoxTier to remove the tier.
func (p *Product) SetBoxTier(quantityPerBox int64, boxPrice decimal.Decimal) error {
	if quantityPerBox <= 0 {
		return shared.NewDomainError("INVALID_BOX_TIER", "Quantity per box must be positive")
	}
	if !boxPrice.IsPositive() {
		return shared.NewDomainError("INVALID_BOX_TIER", "Box price must be positive")
	}
	p.QuantityPerBox = &quantityPerBox
	p.BoxPrice = &boxPrice
	p.Touch()
	p.IncrementVersion()
	return nil
}

// ClearBoxTier removes box-tier pricing
func (p *Product) ClearBoxTier() {
	p.QuantityPerBox = nil
	p.BoxPrice = nil
	p.Touch()
	p.IncrementVersion()
}

// HasBoxTier reports whether a usable box tier is configured
func (p *Product) HasBoxTier() bool {
	return p.QuantityPerBox != nil && *p.QuantityPerBox > 0 &&
		p.BoxPrice != nil && p.BoxPrice.IsPositive()
}

// ApplyStockDelta shifts the stock level by delta (negative for sales).
// Guarding against negative results is the ledger applier's job, not this
// setter's; restored data may legitimately carry negative stock.
func (p *Product) ApplyStockDelta(delta int64) {
	p.Stock += delta
	p.Touch()
	p.IncrementVersion()
}

// SetCostBasis replaces the purchase price after a receipt revaluation
func (p *Product) SetCostBasis(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return &shared.NegativeCostError{ProductID: p.ID, Cost: cost}
	}
	p.PurchasePrice = cost
	p.Touch()
	p.IncrementVersion()
	return nil
}

// IsLowStock reports whether the stock level has reached the alert threshold
func (p *Product) IsLowStock() bool {
	return p.MinStock > 0 && p.Stock <= p.MinStock
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
