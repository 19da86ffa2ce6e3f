package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// EntryKind is the explicit tag distinguishing ledger entry variants. The
// kind is stored with the entry; consumers branch on it rather than
// inferring the variant from an empty line list.
type EntryKind string

const (
	// KindSale is a customer sale with line items
	KindSale EntryKind = "sale"
	// KindCustomerPayment is a zero-line entry for money received from a customer
	KindCustomerPayment EntryKind = "customer_payment"
	// KindPurchase is a supplier invoice receiving stock
	KindPurchase EntryKind = "purchase"
	// KindSupplierPayment is a zero-line entry for money paid to a supplier
	KindSupplierPayment EntryKind = "supplier_payment"
)

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of the supported variants
func (k EntryKind) IsValid() bool {
	switch k {
	case KindSale, KindCustomerPayment, KindPurchase, KindSupplierPayment:
		return true
	}
	return false
}

// IsPayment returns true for the pure-payment variants
func (k EntryKind) IsPayment() bool {
	return k == KindCustomerPayment || k == KindSupplierPayment
}

// EntryLine is an immutable snapshot of one transacted line item: the
// product's identity and pricing as they were at the time of the
// transaction. Later product edits never reach back into history.
type EntryLine struct {
	ProductID      uuid.UUID
	ProductName    string
	Quantity       int64
	UnitPrice      decimal.Decimal
	QuantityPerBox *int64
	BoxPrice       *decimal.Decimal
	LineTotal      decimal.Decimal
}

// EntryTotals holds the monetary summary of an entry. BalanceDelta is the
// signed amount this entry contributed to the counterparty's balance; the
// counterparty balance equals the sum of its entries' deltas by
// construction.
type EntryTotals struct {
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	AmountPaid   decimal.Decimal
	BalanceDelta decimal.Decimal
}

// Entry is one immutable ledger record: a sale, purchase invoice, or
// payment. Created exactly once per commercial event; corrections are made
// with new offsetting entries, never by mutating history.
type Entry struct {
	shared.TenantAggregateRoot
	Kind           EntryKind
	CounterpartyID *uuid.UUID // nil for walk-in sales
	Lines          []EntryLine
	Totals         EntryTotals
	OccurredAt     time.Time
}

// IsPayment returns true for pure-payment entries
func (e *Entry) IsPayment() bool {
	return e.Kind.IsPayment()
}

// BalanceDelta returns this entry's signed contribution to the
// counterparty's balance.
func (e *Entry) BalanceDelta() decimal.Decimal {
	return e.Totals.BalanceDelta
}

func newEntry(tenantID uuid.UUID, kind EntryKind, counterpartyID *uuid.UUID, lines []EntryLine, totals EntryTotals, occurredAt time.Time) *Entry {
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	entry := &Entry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		CounterpartyID:      counterpartyID,
		Lines:               lines,
		Totals:              totals,
		OccurredAt:          occurredAt,
	}
	entry.AddDomainEvent(NewEntryRecordedEvent(entry))
	return entry
}

// Event types for the ledger context
const (
	EventTypeEntryRecorded = "ledger.entry.recorded"
)

// EntryRecordedEvent is raised when a new ledger entry is created. It is
// emitted to the audit log only after the atomic group committed.
type EntryRecordedEvent struct {
	shared.BaseDomainEvent
	Kind         string          `json:"kind"`
	Counterparty *uuid.UUID      `json:"counterparty_id,omitempty"`
	Total        decimal.Decimal `json:"total"`
	BalanceDelta decimal.Decimal `json:"balance_delta"`
}

// NewEntryRecordedEvent creates an EntryRecordedEvent
func NewEntryRecordedEvent(e *Entry) *EntryRecordedEvent {
	return &EntryRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEntryRecorded, e.ID, e.TenantID),
		Kind:            e.Kind.String(),
		Counterparty:    e.CounterpartyID,
		Total:           e.Totals.Total,
		BalanceDelta:    e.Totals.BalanceDelta,
	}
}
