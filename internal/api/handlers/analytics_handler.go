package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/msaleh/formgate/internal/application"
)

type AnalyticsHandler struct {
	svc    *application.AnalyticsService
	report *application.ReportService
}

func NewAnalyticsHandler(svc *application.AnalyticsService, report *application.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, report: report}
}

// GET /analytics/rejections
func (h *AnalyticsHandler) ListRejected(c *gin.Context) {
	filter, ok := parseQueryFilter(c)
	if !ok {
		return
	}

	page, err := h.svc.ListRejected(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /analytics/rejections/breakdown
func (h *AnalyticsHandler) ReasonBreakdown(c *gin.Context) {
	filter, ok := parseQueryFilter(c)
	if !ok {
		return
	}

	rows, err := h.svc.ReasonBreakdown(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"breakdown": rows})
}

// POST /analytics/rejections/export
func (h *AnalyticsHandler) ExportBreakdown(c *gin.Context) {
	if h.report == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Report storage not configured"})
		return
	}

	filter, ok := parseQueryFilter(c)
	if !ok {
		return
	}

	objectName, err := h.report.ExportRejectionBreakdown(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"object": objectName})
}
