package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Customer is a counterparty that buys from the business. Balance is the
// authoritative amount the customer currently owes (positive = owed to the
// business); it is mutated only by the ledger applier and history is
// reconstructed from it, never replayed into it. Spent accumulates lifetime
// gross sales.
type Customer struct {
	shared.TenantAggregateRoot
	Name  string
	Phone string
	Notes string

	Balance decimal.Decimal
	Spent   decimal.Decimal

	// SettlementDay, when set (1-31), anchors the customer's monthly due
	// date in place of the global payment-terms window.
	SettlementDay *int
}

// NewCustomer creates a new customer
func NewCustomer(tenantID uuid.UUID, name string) (*Customer, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrInvalidTenant
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Balance:             decimal.Zero,
		Spent:               decimal.Zero,
	}, nil
}

// Update updates the customer's descriptive fields
func (c *Customer) Update(name, phone, notes string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	c.Name = name
	c.Phone = phone
	c.Notes = notes
	c.Touch()
	c.IncrementVersion()
	return nil
}

// SetSettlementDay sets the monthly due-date anchor; pass nil to fall back
// to the global payment terms.
func (c *Customer) SetSettlementDay(day *int) error {
	if day != nil && (*day < 1 || *day > 31) {
		return shared.NewDomainError("INVALID_SETTLEMENT_DAY", "Settlement day must be between 1 and 31")
	}
	c.SettlementDay = day
	c.Touch()
	c.IncrementVersion()
	return nil
}

// RecordSale applies the balance and lifetime-spend effect of a committed
// sale. Called only by the ledger applier as part of an atomic group.
func (c *Customer) RecordSale(total, balanceDelta decimal.Decimal) {
	c.Spent = c.Spent.Add(total)
	c.Balance = c.Balance.Add(balanceDelta)
	c.Touch()
	c.IncrementVersion()
}

// RecordPayment reduces the customer's outstanding balance by the paid
// amount. Called only by the ledger applier.
func (c *Customer) RecordPayment(amount decimal.Decimal) {
	c.Balance = c.Balance.Sub(amount)
	c.Touch()
	c.IncrementVersion()
}

// HasDebt reports whether the customer currently owes anything
func (c *Customer) HasDebt() bool {
	return c.Balance.IsPositive()
}

func validatePartnerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
