package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/poslite/backend/internal/application/trade"
	"github.com/poslite/backend/internal/interfaces/http/dto"
)

// EntryHandler handles ledger entry query endpoints
type EntryHandler struct {
	BaseHandler
	entryService *tradeapp.EntryQueryService
}

// NewEntryHandler creates a new EntryHandler
func NewEntryHandler(entryService *tradeapp.EntryQueryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// ListEntriesRequest extends the common list parameters with ledger filters
type ListEntriesRequest struct {
	dto.ListRequest
	Kind           string `form:"kind" binding:"omitempty,oneof=sale customer_payment purchase supplier_payment"`
	CounterpartyID string `form:"counterparty_id" binding:"omitempty,uuid"`
}

// List handles GET /ledger/entries
func (h *EntryHandler) List(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	req := ListEntriesRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req.ListRequest)
	if req.Kind != "" {
		filter.Filters["kind"] = req.Kind
	}
	if req.CounterpartyID != "" {
		counterpartyID, err := uuid.Parse(req.CounterpartyID)
		if err != nil {
			h.BadRequest(c, "Invalid counterparty_id")
			return
		}
		filter.Filters["counterparty_id"] = counterpartyID
	}

	entries, err := h.entryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// GetByID handles GET /ledger/entries/:id
func (h *EntryHandler) GetByID(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.entryService.GetByID(c.Request.Context(), tenantID, entryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}
