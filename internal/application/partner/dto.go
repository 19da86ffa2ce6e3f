package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/poslite/backend/internal/domain/ledger"
	"github.com/poslite/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is a request to create a customer
type CreateCustomerRequest struct {
	Name          string
	Phone         string
	Notes         string
	SettlementDay *int
}

// UpdateCustomerRequest is a request to update a customer; nil fields are
// left unchanged.
type UpdateCustomerRequest struct {
	Name               *string
	Phone              *string
	Notes              *string
	SettlementDay      *int
	ClearSettlementDay bool
}

// CreateSupplierRequest is a request to create a supplier
type CreateSupplierRequest struct {
	Name          string
	Phone         string
	Notes         string
	SettlementDay *int
}

// UpdateSupplierRequest is a request to update a supplier; nil fields are
// left unchanged.
type UpdateSupplierRequest struct {
	Name               *string
	Phone              *string
	Notes              *string
	SettlementDay      *int
	ClearSettlementDay bool
}

// CustomerResponse is the application-level view of a customer
type CustomerResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Spent         decimal.Decimal `json:"spent"`
	SettlementDay *int            `json:"settlement_day,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SupplierResponse is the application-level view of a supplier
type SupplierResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	SettlementDay *int            `json:"settlement_day,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StatementLineResponse is one entry in a counterparty statement with the
// running balance immediately after it.
type StatementLineResponse struct {
	EntryID      uuid.UUID       `json:"entry_id"`
	Kind         string          `json:"kind"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Total        decimal.Decimal `json:"total"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	BalanceDelta decimal.Decimal `json:"balance_delta"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// StatementResponse is a counterparty's reconstructed account history
type StatementResponse struct {
	CounterpartyID  uuid.UUID               `json:"counterparty_id"`
	StartingBalance decimal.Decimal         `json:"starting_balance"`
	Lines           []StatementLineResponse `json:"lines"`
	ClosingBalance  decimal.Decimal         `json:"closing_balance"`
}

// DebtAlertResponse reports a counterparty whose oldest outstanding debt is
// due within a day or already overdue.
type DebtAlertResponse struct {
	CounterpartyID uuid.UUID       `json:"counterparty_id"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	OriginDate     time.Time       `json:"origin_date"`
	DueDate        time.Time       `json:"due_date"`
	DaysUntilDue   int             `json:"days_until_due"`
	Overdue        bool            `json:"overdue"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Notes:         c.Notes,
		Balance:       c.Balance,
		Spent:         c.Spent,
		SettlementDay: c.SettlementDay,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers to response DTOs
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// ToSupplierResponse converts a domain supplier to a response DTO
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		Phone:         s.Phone,
		Notes:         s.Notes,
		Balance:       s.Balance,
		SettlementDay: s.SettlementDay,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of domain suppliers to response DTOs
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}

// ToStatementResponse converts a reconstructed statement to a response DTO
func ToStatementResponse(counterpartyID uuid.UUID, stmt ledger.Statement) StatementResponse {
	lines := make([]StatementLineResponse, len(stmt.Lines))
	for i := range stmt.Lines {
		entry := stmt.Lines[i].Entry
		lines[i] = StatementLineResponse{
			EntryID:      entry.ID,
			Kind:         entry.Kind.String(),
			OccurredAt:   entry.OccurredAt,
			Total:        entry.Totals.Total,
			AmountPaid:   entry.Totals.AmountPaid,
			BalanceDelta: entry.Totals.BalanceDelta,
			BalanceAfter: stmt.Lines[i].BalanceAfter,
		}
	}
	return StatementResponse{
		CounterpartyID:  counterpartyID,
		StartingBalance: stmt.StartingBalance,
		Lines:           lines,
		ClosingBalance:  stmt.ClosingBalance,
	}
}
