package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/msaleh/formgate/internal/application"
	"github.com/msaleh/formgate/internal/domain/schema"
)

type SchemaHandler struct {
	svc *application.SchemaService
}

func NewSchemaHandler(svc *application.SchemaService) *SchemaHandler {
	return &SchemaHandler{svc: svc}
}

// POST /schemas
func (h *SchemaHandler) Create(c *gin.Context) {
	var input schema.CreateSchemaDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sch, err := h.svc.CreateSchema(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sch)
}

// GET /schemas
func (h *SchemaHandler) List(c *gin.Context) {
	schemas, err := h.svc.ListSchemas()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schemas)
}

// GET /schemas/active
func (h *SchemaHandler) GetActive(c *gin.Context) {
	sch, err := h.svc.GetActiveSchema()
	if err != nil {
		if errors.Is(err, application.ErrSchemaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active schema"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sch)
}

// GET /schemas/:id
func (h *SchemaHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	sch, err := h.svc.GetSchema(id)
	if err != nil {
		if errors.Is(err, application.ErrSchemaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schema not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sch)
}

// PUT /schemas/:id/activate
func (h *SchemaHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Activate(id); err != nil {
		if errors.Is(err, application.ErrSchemaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schema not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schema activated"})
}

// PUT /schemas/:id/fields/:field_id
func (h *SchemaHandler) UpdateField(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	fieldID64, err := strconv.ParseUint(c.Param("field_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid field id"})
		return
	}

	var input schema.UpdateFieldDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	field, err := h.svc.UpdateField(id, uint(fieldID64), input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, application.ErrSchemaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, field)
}

// DELETE /schemas/:id/fields/:field_id
func (h *SchemaHandler) RemoveField(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	fieldID64, err := strconv.ParseUint(c.Param("field_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid field id"})
		return
	}

	if err := h.svc.RemoveField(id, uint(fieldID64)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, application.ErrSchemaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Field removed"})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id64), true
}
