package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/poslite/backend/internal/application/report"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	summaryService *reportapp.SummaryService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(summaryService *reportapp.SummaryService) *ReportHandler {
	return &ReportHandler{summaryService: summaryService}
}

// PeriodSummaryRequest carries the reporting period as RFC 3339 timestamps
// or plain dates
type PeriodSummaryRequest struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// PeriodSummary handles GET /reports/summary
func (h *ReportHandler) PeriodSummary(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.MissingTenant(c)
		return
	}

	var req PeriodSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	from, ok := parseTimeParam(req.From)
	if !ok {
		h.BadRequest(c, "Invalid from timestamp")
		return
	}
	to, ok := parseTimeParam(req.To)
	if !ok {
		h.BadRequest(c, "Invalid to timestamp")
		return
	}

	summary, err := h.summaryService.PeriodSummary(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// parseTimeParam accepts RFC 3339 timestamps and bare dates
func parseTimeParam(value string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
