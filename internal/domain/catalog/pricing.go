package catalog

import (
	"github.com/shopspring/decimal"
)

// RoundAmount rounds a monetary amount to the 2-decimal precision used for
// stored and displayed currency values. Intermediate arithmetic stays at
// full precision; only final amounts pass through here.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// LineTotal computes the monetary total of a line item. When a usable box
// tier is supplied (quantityPerBox > 0 and boxPrice > 0), full boxes are
// charged at boxPrice and the remainder at unitPrice:
//
//	boxes*boxPrice + (quantity mod quantityPerBox)*unitPrice
//
// Any malformed box configuration silently falls back to plain unit pricing.
// The result is unrounded; callers round the final amount with RoundAmount.
func LineTotal(quantity int64, unitPrice decimal.Decimal, quantityPerBox *int64, boxPrice *decimal.Decimal) decimal.Decimal {
	if quantityPerBox != nil && boxPrice != nil && *quantityPerBox > 0 && boxPrice.IsPositive() {
		boxes := quantity / *quantityPerBox
		remainder := quantity % *quantityPerBox
		return boxPrice.Mul(decimal.NewFromInt(boxes)).
			Add(unitPrice.Mul(decimal.NewFromInt(remainder)))
	}
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// ProductLineTotal computes the line total for a product using its own
// pricing configuration.
func ProductLineTotal(p *Product, quantity int64) decimal.Decimal {
	return LineTotal(quantity, p.UnitPrice, p.QuantityPerBox, p.BoxPrice)
}
