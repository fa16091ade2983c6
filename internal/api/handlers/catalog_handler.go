package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/msaleh/formgate/internal/application"
)

type CatalogHandler struct {
	svc *application.CatalogService
}

func NewCatalogHandler(svc *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GET /schemas/:id/rejection-reasons
// Returns every rejection message the schema can currently produce, so a
// UI can offer them as filters without scanning submission history.
func (h *CatalogHandler) CatalogFor(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	catalog, err := h.svc.CatalogFor(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Schema not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, catalog)
}
