package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/inventory"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CheckoutLineRequest is one cart line of a checkout
type CheckoutLineRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// CheckoutRequest records a sale, either cash (no customer) or on a
// customer's account.
type CheckoutRequest struct {
	CustomerID     *uuid.UUID            `json:"customer_id,omitempty"`
	Lines          []CheckoutLineRequest `json:"lines"`
	Discount       decimal.Decimal       `json:"discount"`
	AmountPaid     decimal.Decimal       `json:"amount_paid"`
	OccurredAt     time.Time             `json:"occurred_at,omitempty"`
	IdempotencyKey string                `json:"-"`
}

// PaymentRequest records money received from a customer or paid to a
// supplier.
type PaymentRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	OccurredAt     time.Time       `json:"occurred_at,omitempty"`
	IdempotencyKey string          `json:"-"`
}

// PurchaseLineRequest is one received line of a supplier invoice
type PurchaseLineRequest struct {
	ProductID      uuid.UUID        `json:"product_id"`
	Quantity       int64            `json:"quantity"`
	UnitCost       decimal.Decimal  `json:"unit_cost"`
	QuantityPerBox *int64           `json:"quantity_per_box,omitempty"`
	BoxPrice       *decimal.Decimal `json:"box_price,omitempty"`
}

// PurchaseRequest records a supplier invoice and the stock it delivers
type PurchaseRequest struct {
	Lines          []PurchaseLineRequest   `json:"lines"`
	AmountPaid     decimal.Decimal         `json:"amount_paid"`
	Policy         inventory.CostingPolicy `json:"costing_policy"`
	OccurredAt     time.Time               `json:"occurred_at,omitempty"`
	IdempotencyKey string                  `json:"-"`
}

// EntryLineResponse is one line item of a recorded entry
type EntryLineResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// EntryResponse is the application-level view of a committed ledger entry
type EntryResponse struct {
	ID             uuid.UUID           `json:"id"`
	Kind           string              `json:"kind"`
	CounterpartyID *uuid.UUID          `json:"counterparty_id,omitempty"`
	Lines          []EntryLineResponse `json:"lines,omitempty"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Discount       decimal.Decimal     `json:"discount"`
	Total          decimal.Decimal     `json:"total"`
	AmountPaid     decimal.Decimal     `json:"amount_paid"`
	BalanceDelta   decimal.Decimal     `json:"balance_delta"`
	OccurredAt     time.Time           `json:"occurred_at"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToEntryResponse converts a domain entry to a response DTO
func ToEntryResponse(e *ledger.Entry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = EntryLineResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		}
	}
	return EntryResponse{
		ID:             e.ID,
		Kind:           e.Kind.String(),
		CounterpartyID: e.CounterpartyID,
		Lines:          lines,
		Subtotal:       e.Totals.Subtotal,
		Discount:       e.Totals.Discount,
		Total:          e.Totals.Total,
		AmountPaid:     e.Totals.AmountPaid,
		BalanceDelta:   e.Totals.BalanceDelta,
		OccurredAt:     e.OccurredAt,
		CreatedAt:      e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries to response DTOs
func ToEntryResponses(entries []ledger.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
