package inventory

import (
	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CostingPolicy selects how a purchase receipt revalues the cost basis of
// the received products.
type CostingPolicy string

const (
	// PolicyMasterOverride replaces the cost basis with the invoice unit
	// cost, optionally rewriting the box tier from the invoice line.
	PolicyMasterOverride CostingPolicy = "master_override"
	// PolicyWeightedAverage blends existing stock value with the incoming
	// lot. Negative opening stock carries no weight.
	PolicyWeightedAverage CostingPolicy = "weighted_average"
	// PolicyNone leaves the cost basis untouched; only stock moves.
	PolicyNone CostingPolicy = "none"
)

// IsValid returns true if the policy is one of the supported values
func (p CostingPolicy) IsValid() bool {
	switch p {
	case PolicyMasterOverride, PolicyWeightedAverage, PolicyNone:
		return true
	}
	return false
}

// ReceiptLine is one line of a supplier invoice as seen by the costing
// engine: a quantity of a product received at a unit cost. Under the
// master-override policy a line may also carry replacement box-tier values.
type ReceiptLine struct {
	ProductID      uuid.UUID
	Quantity       int64
	UnitCost       decimal.Decimal
	QuantityPerBox *int64
	BoxPrice       *decimal.Decimal
}

// Revalue applies a purchase receipt to the given product snapshots and
// returns updated copies; the input slice and its elements are never
// mutated. Stock always increases by the line quantity regardless of
// policy. Lines referencing the same product compound in input order, each
// seeing the stock and cost produced by the previous line.
func Revalue(products []catalog.Product, lines []ReceiptLine, policy CostingPolicy) ([]catalog.Product, error) {
	if !policy.IsValid() {
		return nil, shared.NewDomainError("INVALID_POLICY", "Unknown costing policy")
	}

	updated := make([]catalog.Product, len(products))
	copy(updated, products)

	index := make(map[uuid.UUID]int, len(updated))
	for i := range updated {
		index[updated[i].ID] = i
	}

	for _, line := range lines {
		i, ok := index[line.ProductID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Receipt quantity must be positive")
		}
		if line.UnitCost.IsNegative() {
			return nil, shared.NewDomainError("INVALID_COST", "Receipt unit cost cannot be negative")
		}

		product := &updated[i]

		switch policy {
		case PolicyMasterOverride:
			if err := product.SetCostBasis(line.UnitCost); err != nil {
				return nil, err
			}
			if line.QuantityPerBox != nil && line.BoxPrice != nil {
				if err := product.SetBoxTier(*line.QuantityPerBox, *line.BoxPrice); err != nil {
					return nil, err
				}
			}
		case PolicyWeightedAverage:
			cost := weightedAverageCost(product.Stock, product.PurchasePrice, line.Quantity, line.UnitCost)
			if err := product.SetCostBasis(cost); err != nil {
				return nil, err
			}
		case PolicyNone:
			// cost basis untouched
		}

		product.ApplyStockDelta(line.Quantity)
	}

	return updated, nil
}

// weightedAverageCost blends the valued portion of existing stock with the
// incoming lot. Opening stock below zero is clamped to zero so phantom
// negative quantities cannot drag the average; when nothing carries weight
// the incoming cost wins outright.
func weightedAverageCost(openingStock int64, openingCost decimal.Decimal, qty int64, unitCost decimal.Decimal) decimal.Decimal {
	weighted := openingStock
	if weighted < 0 {
		weighted = 0
	}
	denominator := weighted + qty
	if denominator <= 0 {
		return unitCost
	}

	openingValue := openingCost.Mul(decimal.NewFromInt(weighted))
	incomingValue := unitCost.Mul(decimal.NewFromInt(qty))
	average := openingValue.Add(incomingValue).Div(decimal.NewFromInt(denominator))
	return catalog.RoundAmount(average)
}
