package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/poslite/backend/internal/application/trade"
	"github.com/shopspring/decimal"
)

// IdempotencyKeyHeader lets clients replay a mutation safely: a retried
// request carrying the same key is rejected instead of double-applied.
const IdempotencyKeyHeader = "X-Idempotency-Key"

// CheckoutHandler handles checkout and customer payment endpoints
type CheckoutHandler struct {
	BaseHandler
	checkoutService *tradeapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *tradeapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// CheckoutLineRequest is one cart line in the request body
type CheckoutLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest is the request body for recording a sale
type CheckoutRequest struct {
	CustomerID *string               `json:"customer_id" binding:"omitempty,uuid"`
	Lines      []CheckoutLineRequest `json:"lines" binding:"required,min=1,dive"`
	Discount   string                `json:"discount"`
	AmountPaid string                `json:"amount_paid"`
	OccurredAt *time.Time            `json:"occurred_at"`
}

// PaymentRequest is the request body for recording a payment
type PaymentRequest struct {
	Amount     string     `json:"amount" binding:"required"`
	OccurredAt *time.Time `json:"occurred_at"`
}

// Checkout handles POST /trade/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := tradeapp.CheckoutRequest{
		Lines:          make([]tradeapp.CheckoutLineRequest, len(req.Lines)),
		Discount:       decimal.Zero,
		AmountPaid:     decimal.Zero,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	}
	for i, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		appReq.Lines[i] = tradeapp.CheckoutLineRequest{
			ProductID: productID,
			Quantity:  line.Quantity,
		}
	}
	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer_id")
			return
		}
		appReq.CustomerID = &customerID
	}
	if req.Discount != "" {
		discount, err := decimal.NewFromString(req.Discount)
		if err != nil {
			h.BadRequest(c, "Invalid discount")
			return
		}
		appReq.Discount = discount
	}
	if req.AmountPaid != "" {
		amountPaid, err := decimal.NewFromString(req.AmountPaid)
		if err != nil {
			h.BadRequest(c, "Invalid amount_paid")
			return
		}
		appReq.AmountPaid = amountPaid
	}
	if req.OccurredAt != nil {
		appReq.OccurredAt = *req.OccurredAt
	}

	entry, err := h.checkoutService.RecordSale(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// CustomerPayment handles POST /partners/customers/:id/payments
func (h *CheckoutHandler) CustomerPayment(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	appReq := tradeapp.PaymentRequest{
		Amount:         amount,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	}
	if req.OccurredAt != nil {
		appReq.OccurredAt = *req.OccurredAt
	}

	entry, err := h.checkoutService.RecordCustomerPayment(c.Request.Context(), tenantID, customerID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}
