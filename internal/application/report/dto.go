package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopProductResponse is one product's sales performance in a period
type TopProductResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// PeriodSummaryResponse aggregates a period's ledger activity
type PeriodSummaryResponse struct {
	From             time.Time            `json:"from"`
	To               time.Time            `json:"to"`
	SalesCount       int64                `json:"sales_count"`
	SalesTotal       decimal.Decimal      `json:"sales_total"`
	DiscountTotal    decimal.Decimal      `json:"discount_total"`
	PaymentsReceived decimal.Decimal      `json:"payments_received"`
	PurchasesTotal   decimal.Decimal      `json:"purchases_total"`
	PaymentsMade     decimal.Decimal      `json:"payments_made"`
	CreditExtended   decimal.Decimal      `json:"credit_extended"`
	TopProducts      []TopProductResponse `json:"top_products"`
	Narrative        string               `json:"narrative,omitempty"`
}
