package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/poslite/backend/internal/application/trade"
	"github.com/poslite/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// PurchaseHandler handles supplier invoice and payment endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// PurchaseLineRequest is one received line in the request body
type PurchaseLineRequest struct {
	ProductID      string  `json:"product_id" binding:"required,uuid"`
	Quantity       int64   `json:"quantity" binding:"required,min=1"`
	UnitCost       string  `json:"unit_cost" binding:"required"`
	QuantityPerBox *int64  `json:"quantity_per_box" binding:"omitempty,min=2"`
	BoxPrice       *string `json:"box_price"`
}

// PurchaseRequest is the request body for recording a supplier invoice
type PurchaseRequest struct {
	Lines      []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
	AmountPaid string                `json:"amount_paid"`
	Policy     string                `json:"costing_policy" binding:"omitempty,oneof=master_override weighted_average none"`
	OccurredAt *time.Time            `json:"occurred_at"`
}

// Invoice handles POST /partners/suppliers/:id/invoices
func (h *PurchaseHandler) Invoice(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}
	supplierID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := tradeapp.PurchaseRequest{
		Lines:          make([]tradeapp.PurchaseLineRequest, len(req.Lines)),
		AmountPaid:     decimal.Zero,
		Policy:         inventory.CostingPolicy(req.Policy),
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	}
	for i, line := range req.Lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		unitCost, err := decimal.NewFromString(line.UnitCost)
		if err != nil {
			h.BadRequest(c, "Invalid unit_cost")
			return
		}
		appLine := tradeapp.PurchaseLineRequest{
			ProductID:      productID,
			Quantity:       line.Quantity,
			UnitCost:       unitCost,
			QuantityPerBox: line.QuantityPerBox,
		}
		if line.BoxPrice != nil {
			boxPrice, err := decimal.NewFromString(*line.BoxPrice)
			if err != nil {
				h.BadRequest(c, "Invalid box_price")
				return
			}
			appLine.BoxPrice = &boxPrice
		}
		appReq.Lines[i] = appLine
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

	entry, err := h.purchaseService.RecordSupplierInvoice(c.Request.Context(), tenantID, supplierID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// Payment handles POST /partners/suppliers/:id/payments
func (h *PurchaseHandler) Payment(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}
	supplierID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
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

	entry, err := h.purchaseService.RecordSupplierPayment(c.Request.Context(), tenantID, supplierID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}
