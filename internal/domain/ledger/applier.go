package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/catalog"
	"github.com/poslite/backend/internal/domain/inventory"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// The applier turns a proposed commercial event into a mutation plan: the
// new ledger entry plus updated copies of every touched entity. Planning is
// pure; inputs are snapshots and are never mutated. Every precondition is
// checked before the first copy is made, so a failed plan leaves nothing
// behind. The caller commits the whole plan through a UnitOfWork in one
// atomic group.

// SaleLineInput is one cart line of a proposed sale
type SaleLineInput struct {
	ProductID uuid.UUID
	Quantity  int64
}

// SaleInput is a proposed sale transaction
type SaleInput struct {
	Lines      []SaleLineInput
	Discount   decimal.Decimal
	AmountPaid decimal.Decimal
	OccurredAt time.Time
}

// SalePlan is the atomic mutation group produced by a successful sale
type SalePlan struct {
	Entry    *Entry
	Products []catalog.Product
	Customer *partner.Customer // nil for walk-in sales
}

// PlanSale validates a proposed sale against the given product snapshots
// and produces the mutation group: the sale entry, stock-decremented
// product copies, and (for account sales) the customer with spent and
// balance advanced. Any line exceeding available stock fails the whole
// sale with an InsufficientStockError; there is no partial application.
//
// Overpayment (amountPaid > total) yields a negative balance delta and is
// accepted as customer credit.
func PlanSale(tenantID uuid.UUID, products []catalog.Product, customer *partner.Customer, in SaleInput) (*SalePlan, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrInvalidTenant
	}
	if len(in.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "A sale requires at least one line item")
	}

	updated := make([]catalog.Product, len(products))
	copy(updated, products)
	index := make(map[uuid.UUID]int, len(updated))
	for i := range updated {
		index[updated[i].ID] = i
	}

	// Validate everything before touching a single copy. Quantities are
	// checked against the running stock so duplicate cart lines for one
	// product cannot slip past the guard together.
	pending := make(map[uuid.UUID]int64, len(in.Lines))
	for _, line := range in.Lines {
		i, ok := index[line.ProductID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Sale quantity must be positive")
		}
		product := &updated[i]
		requested := pending[line.ProductID] + line.Quantity
		if requested > product.Stock {
			return nil, shared.NewInsufficientStockError(product.ID, product.Name, requested, product.Stock)
		}
		pending[line.ProductID] = requested
	}

	entryLines := make([]EntryLine, 0, len(in.Lines))
	subtotal := decimal.Zero
	for _, line := range in.Lines {
		product := &updated[index[line.ProductID]]
		lineTotal := catalog.ProductLineTotal(product, line.Quantity)
		subtotal = subtotal.Add(lineTotal)

		entryLines = append(entryLines, EntryLine{
			ProductID:      product.ID,
			ProductName:    product.Name,
			Quantity:       line.Quantity,
			UnitPrice:      product.UnitPrice,
			QuantityPerBox: product.QuantityPerBox,
			BoxPrice:       product.BoxPrice,
			LineTotal:      catalog.RoundAmount(lineTotal),
		})
		product.ApplyStockDelta(-line.Quantity)
	}

	subtotal = catalog.RoundAmount(subtotal)
	total := catalog.RoundAmount(subtotal.Sub(in.Discount))
	if total.IsNegative() {
		total = decimal.Zero
	}
	balanceDelta := total.Sub(in.AmountPaid)

	var counterpartyID *uuid.UUID
	var updatedCustomer *partner.Customer
	if customer != nil {
		c := *customer
		c.RecordSale(total, balanceDelta)
		updatedCustomer = &c
		counterpartyID = &c.ID
	}

	entry := newEntry(tenantID, KindSale, counterpartyID, entryLines, EntryTotals{
		Subtotal:     subtotal,
		Discount:     in.Discount,
		Total:        total,
		AmountPaid:   in.AmountPaid,
		BalanceDelta: balanceDelta,
	}, in.OccurredAt)

	return &SalePlan{
		Entry:    entry,
		Products: updated,
		Customer: updatedCustomer,
	}, nil
}

// CustomerPaymentPlan is the atomic mutation group for a customer payment
type CustomerPaymentPlan struct {
	Entry    *Entry
	Customer *partner.Customer
}

// PlanCustomerPayment produces the mutation group for money received from a
// customer: a zero-line payment entry whose balance delta is the negated
// amount, and the customer with the balance reduced accordingly. The amount
// must be positive; whether it exceeds the outstanding balance is the
// caller's policy to enforce.
func PlanCustomerPayment(tenantID uuid.UUID, customer *partner.Customer, amount decimal.Decimal, occurredAt time.Time) (*CustomerPaymentPlan, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrInvalidTenant
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}

	c := *customer
	c.RecordPayment(amount)

	entry := newEntry(tenantID, KindCustomerPayment, &c.ID, nil, EntryTotals{
		AmountPaid:   amount,
		BalanceDelta: amount.Neg(),
	}, occurredAt)

	return &CustomerPaymentPlan{Entry: entry, Customer: &c}, nil
}

// SupplierPaymentPlan is the atomic mutation group for a supplier payment
type SupplierPaymentPlan struct {
	Entry    *Entry
	Supplier *partner.Supplier
}

// PlanSupplierPayment produces the mutation group for money paid to a
// supplier: a zero-line payment entry and the supplier with the owed
// balance reduced.
func PlanSupplierPayment(tenantID uuid.UUID, supplier *partner.Supplier, amount decimal.Decimal, occurredAt time.Time) (*SupplierPaymentPlan, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrInvalidTenant
	}
	if supplier == nil {
		return nil, shared.ErrNotFound
	}
	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}

	s := *supplier
	s.RecordPayment(amount)

	entry := newEntry(tenantID, KindSupplierPayment, &s.ID, nil, EntryTotals{
		AmountPaid:   amount,
		BalanceDelta: amount.Neg(),
	}, occurredAt)

	return &SupplierPaymentPlan{Entry: entry, Supplier: &s}, nil
}

// PurchaseInput is a proposed supplier invoice
type PurchaseInput struct {
	Lines      []inventory.ReceiptLine
	AmountPaid decimal.Decimal
	Policy     inventory.CostingPolicy
	OccurredAt time.Time
}

// PurchasePlan is the atomic mutation group produced by a supplier invoice
type PurchasePlan struct {
	Entry    *Entry
	Products []catalog.Product
	Supplier *partner.Supplier
}

// PlanPurchase produces the mutation group for a supplier invoice: the
// purchase entry, products restocked and revalued under the chosen costing
// policy, and the supplier owed the unpaid remainder. Purchase totals are
// plain quantity times unit cost; box tiering never applies on the
// purchase side.
func PlanPurchase(tenantID uuid.UUID, products []catalog.Product, supplier *partner.Supplier, in PurchaseInput) (*PurchasePlan, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrInvalidTenant
	}
	if supplier == nil {
		return nil, shared.ErrNotFound
	}
	if len(in.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_PURCHASE", "A purchase invoice requires at least one line item")
	}

	updated, err := inventory.Revalue(products, in.Lines, in.Policy)
	if err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]int, len(updated))
	for i := range updated {
		index[updated[i].ID] = i
	}

	entryLines := make([]EntryLine, 0, len(in.Lines))
	totalAmount := decimal.Zero
	for _, line := range in.Lines {
		product := &updated[index[line.ProductID]]
		lineTotal := line.UnitCost.Mul(decimal.NewFromInt(line.Quantity))
		totalAmount = totalAmount.Add(lineTotal)

		entryLines = append(entryLines, EntryLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitCost,
			LineTotal:   catalog.RoundAmount(lineTotal),
		})
	}

	totalAmount = catalog.RoundAmount(totalAmount)
	balanceDelta := totalAmount.Sub(in.AmountPaid)

	s := *supplier
	s.RecordInvoice(totalAmount, in.AmountPaid)

	entry := newEntry(tenantID, KindPurchase, &s.ID, entryLines, EntryTotals{
		Subtotal:     totalAmount,
		Total:        totalAmount,
		AmountPaid:   in.AmountPaid,
		BalanceDelta: balanceDelta,
	}, in.OccurredAt)

	return &PurchasePlan{
		Entry:    entry,
		Products: updated,
		Supplier: &s,
	}, nil
}
