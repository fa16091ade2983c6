package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/msaleh/formgate/internal/application"
	"github.com/msaleh/formgate/internal/domain/submission"
)

type SubmissionHandler struct {
	svc *application.SubmissionService
}

func NewSubmissionHandler(svc *application.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// POST /submissions
// Every accepted submission comes back decided: approved or rejected with
// bilingual reasons. Only precondition failures return an error status.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var input submission.SubmitDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Submit(input.SchemaID, input.SubmitterName, input.Values)
	if err != nil {
		var missErr *application.MissingRequiredFieldsError
		switch {
		case errors.Is(err, application.ErrSchemaNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Schema not found"})
		case errors.As(err, &missErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":             "Missing required fields",
				"missing_fields":    missErr.Labels,
				"missing_fields_ar": missErr.LabelsAr,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process submission"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GET /submissions
func (h *SubmissionHandler) List(c *gin.Context) {
	filter, ok := parseQueryFilter(c)
	if !ok {
		return
	}

	page, err := h.svc.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /submissions/:id
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	sub, err := h.svc.GetSubmission(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sub)
}

// PUT /submissions/:id/status
func (h *SubmissionHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input submission.UpdateStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.svc.UpdateStatus(id, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sub)
}

// DELETE /submissions/:id
func (h *SubmissionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.SoftDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted"})
}

func parseQueryFilter(c *gin.Context) (submission.QueryFilter, bool) {
	var filter submission.QueryFilter

	if raw := c.Query("schema_id"); raw != "" {
		id64, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schema_id"})
			return filter, false
		}
		filter.SchemaID = uint(id64)
	}
	if raw := c.Query("status"); raw != "" {
		status := submission.Status(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return filter, false
		}
		filter.Status = status
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return filter, false
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return filter, false
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	return filter, true
}
