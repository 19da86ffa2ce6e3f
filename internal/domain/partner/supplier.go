package partner

import (
	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Supplier is a counterparty the business buys from. Balance is the amount
// the business currently owes the supplier (positive = owed by the
// business); like the customer balance it is mutated only by the ledger
// applier.
type Supplier struct {
	shared.TenantAggregateRoot
	Name  string
	Phone string
	Notes string

	Balance decimal.Decimal

	// SettlementDay, when set (1-31), anchors the supplier's monthly due
	// date in place of the global payment-terms window.
	SettlementDay *int
}

// NewSupplier creates a new supplier
func NewSupplier(tenantID uuid.UUID, name string) (*Supplier, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrInvalidTenant
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Balance:             decimal.Zero,
	}, nil
}

// Update updates the supplier's descriptive fields
func (s *Supplier) Update(name, phone, notes string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	s.Name = name
	s.Phone = phone
	s.Notes = notes
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetSettlementDay sets the monthly due-date anchor; pass nil to fall back
// to the global payment terms.
func (s *Supplier) SetSettlementDay(day *int) error {
	if day != nil && (*day < 1 || *day > 31) {
		return shared.NewDomainError("INVALID_SETTLEMENT_DAY", "Settlement day must be between 1 and 31")
	}
	s.SettlementDay = day
	s.Touch()
	s.IncrementVersion()
	return nil
}

// RecordInvoice applies the balance effect of a received purchase invoice:
// the unpaid remainder becomes owed to the supplier.
func (s *Supplier) RecordInvoice(totalAmount, amountPaid decimal.Decimal) {
	s.Balance = s.Balance.Add(totalAmount.Sub(amountPaid))
	s.Touch()
	s.IncrementVersion()
}

// RecordPayment reduces what the business owes the supplier
func (s *Supplier) RecordPayment(amount decimal.Decimal) {
	s.Balance = s.Balance.Sub(amount)
	s.Touch()
	s.IncrementVersion()
}

// HasDebt reports whether the business currently owes this supplier
func (s *Supplier) HasDebt() bool {
	return s.Balance.IsPositive()
}
