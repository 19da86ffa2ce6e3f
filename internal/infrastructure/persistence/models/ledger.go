package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// EntryModel is the persistence model for the ledger Entry aggregate.
// Entries are append-only: rows are inserted once and never updated, so the
// Version column stays at 1 for their whole life.
type EntryModel struct {
	TenantAggregateModel
	Kind           string           `gorm:"type:varchar(30);not null;index"`
	CounterpartyID *uuid.UUID       `gorm:"type:uuid;index"`
	Subtotal       decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Discount       decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Total          decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceDelta   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	OccurredAt     time.Time        `gorm:"not null;index"`
	Lines          []EntryLineModel `gorm:"foreignKey:EntryID;references:ID"`
}

// TableName returns the table name for GORM
func (EntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain Entry aggregate
func (m *EntryModel) ToDomain() *ledger.Entry {
	e := &ledger.Entry{
		Kind:           ledger.EntryKind(m.Kind),
		CounterpartyID: m.CounterpartyID,
		Totals: ledger.EntryTotals{
			Subtotal:     m.Subtotal,
			Discount:     m.Discount,
			Total:        m.Total,
			AmountPaid:   m.AmountPaid,
			BalanceDelta: m.BalanceDelta,
		},
		OccurredAt: m.OccurredAt,
		Lines:      make([]ledger.EntryLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		e.Lines[i] = line.ToDomain()
	}
	m.PopulateTenantAggregateRoot(&e.TenantAggregateRoot)
	return e
}

// FromDomain populates the persistence model from a domain Entry aggregate
func (m *EntryModel) FromDomain(e *ledger.Entry) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.Kind = e.Kind.String()
	m.CounterpartyID = e.CounterpartyID
	m.Subtotal = e.Totals.Subtotal
	m.Discount = e.Totals.Discount
	m.Total = e.Totals.Total
	m.AmountPaid = e.Totals.AmountPaid
	m.BalanceDelta = e.Totals.BalanceDelta
	m.OccurredAt = e.OccurredAt
	m.Lines = make([]EntryLineModel, len(e.Lines))
	for i, line := range e.Lines {
		m.Lines[i] = EntryLineModelFromDomain(e.ID, i, line)
	}
}

// EntryModelFromDomain creates a new persistence model from a domain Entry
func EntryModelFromDomain(e *ledger.Entry) *EntryModel {
	m := &EntryModel{}
	m.FromDomain(e)
	return m
}

// EntryLineModel is the persistence model for one line item of a ledger
// entry. Lines are value objects in the domain; LineNo preserves their
// input order across round trips.
type EntryLineModel struct {
	ID             uint             `gorm:"primaryKey;autoIncrement"`
	EntryID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	LineNo         int              `gorm:"not null"`
	ProductID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductName    string           `gorm:"type:varchar(200);not null"`
	Quantity       int64            `gorm:"not null"`
	UnitPrice      decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	QuantityPerBox *int64           `gorm:""`
	BoxPrice       *decimal.Decimal `gorm:"type:decimal(18,4)"`
	LineTotal      decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (EntryLineModel) TableName() string {
	return "ledger_entry_lines"
}

// ToDomain converts the persistence model to a domain EntryLine value
func (m *EntryLineModel) ToDomain() ledger.EntryLine {
	return ledger.EntryLine{
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		Quantity:       m.Quantity,
		UnitPrice:      m.UnitPrice,
		QuantityPerBox: m.QuantityPerBox,
		BoxPrice:       m.BoxPrice,
		LineTotal:      m.LineTotal,
	}
}

// EntryLineModelFromDomain creates a persistence model for one entry line
func EntryLineModelFromDomain(entryID uuid.UUID, lineNo int, line ledger.EntryLine) EntryLineModel {
	return EntryLineModel{
		EntryID:        entryID,
		LineNo:         lineNo,
		ProductID:      line.ProductID,
		ProductName:    line.ProductName,
		Quantity:       line.Quantity,
		UnitPrice:      line.UnitPrice,
		QuantityPerBox: line.QuantityPerBox,
		BoxPrice:       line.BoxPrice,
		LineTotal:      line.LineTotal,
	}
}
