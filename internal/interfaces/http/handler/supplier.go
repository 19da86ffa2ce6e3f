package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/poslite/backend/internal/application/partner"
	"github.com/poslite/backend/internal/interfaces/http/dto"
)

// SupplierHandler handles supplier API endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// CreateSupplierRequest is the request body for creating a supplier
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Notes         string `json:"notes" binding:"max=1000"`
	SettlementDay *int   `json:"settlement_day" binding:"omitempty,min=1,max=31"`
}

// UpdateSupplierRequest is the request body for updating a supplier
type UpdateSupplierRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone              *string `json:"phone" binding:"omitempty,max=50"`
	Notes              *string `json:"notes" binding:"omitempty,max=1000"`
	SettlementDay      *int    `json:"settlement_day" binding:"omitempty,min=1,max=31"`
	ClearSettlementDay bool    `json:"clear_settlement_day"`
}

// Create handles POST /partners/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), tenantID, partnerapp.CreateSupplierRequest{
		Name:          req.Name,
		Phone:         req.Phone,
		Notes:         req.Notes,
		SettlementDay: req.SettlementDay,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, supplier)
}

// GetByID handles GET /partners/suppliers/:id
func (h *SupplierHandler) GetByID(c *gin.Context) {
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

	supplier, err := h.supplierService.GetByID(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, supplier)
}

// List handles GET /partners/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req)
	suppliers, total, err := h.supplierService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, suppliers, total, filter.Page, filter.PageSize)
}

// Update handles PUT /partners/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
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

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), tenantID, supplierID, partnerapp.UpdateSupplierRequest{
		Name:               req.Name,
		Phone:              req.Phone,
		Notes:              req.Notes,
		SettlementDay:      req.SettlementDay,
		ClearSettlementDay: req.ClearSettlementDay,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, supplier)
}

// Delete handles DELETE /partners/suppliers/:id
func (h *SupplierHandler) Delete(c *gin.Context) {
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

	if err := h.supplierService.Delete(c.Request.Context(), tenantID, supplierID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Statement handles GET /partners/suppliers/:id/statement
func (h *SupplierHandler) Statement(c *gin.Context) {
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

	statement, err := h.supplierService.Statement(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}

// DebtAlerts handles GET /partners/suppliers/debt-alerts
func (h *SupplierHandler) DebtAlerts(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	alerts, err := h.supplierService.ListDebtAlerts(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, alerts)
}
