package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/poslite/backend/internal/application/partner"
	"github.com/poslite/backend/internal/interfaces/http/dto"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest is the request body for creating a customer
type CreateCustomerRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Phone         string `json:"phone" binding:"max=50"`
	Notes         string `json:"notes" binding:"max=1000"`
	SettlementDay *int   `json:"settlement_day" binding:"omitempty,min=1,max=31"`
}

// UpdateCustomerRequest is the request body for updating a customer
type UpdateCustomerRequest struct {
	Name               *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone              *string `json:"phone" binding:"omitempty,max=50"`
	Notes              *string `json:"notes" binding:"omitempty,max=1000"`
	SettlementDay      *int    `json:"settlement_day" binding:"omitempty,min=1,max=31"`
	ClearSettlementDay bool    `json:"clear_settlement_day"`
}

// Create handles POST /partners/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), tenantID, partnerapp.CreateCustomerRequest{
		Name:          req.Name,
		Phone:         req.Phone,
		Notes:         req.Notes,
		SettlementDay: req.SettlementDay,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, customer)
}

// GetByID handles GET /partners/customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
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

	customer, err := h.customerService.GetByID(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// List handles GET /partners/customers
func (h *CustomerHandler) List(c *gin.Context) {
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
	customers, total, err := h.customerService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// Update handles PUT /partners/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
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

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), tenantID, customerID, partnerapp.UpdateCustomerRequest{
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

	h.Success(c, customer)
}

// Delete handles DELETE /partners/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
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

	if err := h.customerService.Delete(c.Request.Context(), tenantID, customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Statement handles GET /partners/customers/:id/statement
func (h *CustomerHandler) Statement(c *gin.Context) {
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

	statement, err := h.customerService.Statement(c.Request.Context(), tenantID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}

// DebtAlerts handles GET /partners/customers/debt-alerts
func (h *CustomerHandler) DebtAlerts(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	alerts, err := h.customerService.ListDebtAlerts(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, alerts)
}
