package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franchisepulse/backend/internal/application/services"
	"github.com/franchisepulse/backend/pkg/errors"
)

// CatalogHandler exposes the set of tracked shows.
type CatalogHandler struct {
	analytics *services.AnalyticsService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(analytics *services.AnalyticsService) *CatalogHandler {
	return &CatalogHandler{analytics: analytics}
}

// Shows handles GET /api/catalog/shows — every title with stored data.
func (h *CatalogHandler) Shows(c *gin.Context) {
	titles, err := h.analytics.Titles(c.Request.Context())
	if err != nil {
		RespondAppError(c, errors.NewInternalError("failed to list shows", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shows": titles})
}
