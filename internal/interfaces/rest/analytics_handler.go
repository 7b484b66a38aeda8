package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franchisepulse/backend/internal/application/services"
	"github.com/franchisepulse/backend/pkg/errors"
)

// AnalyticsHandler runs guarded raw SQL for admins.
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

type adminQueryRequest struct {
	SQL    string        `json:"sql" binding:"required"`
	Params []interface{} `json:"params"`
}

// Query handles POST /api/analytics/query. The SQL guard rejects anything
// that is not a single SELECT over allowlisted tables.
func (h *AnalyticsHandler) Query(c *gin.Context) {
	var req adminQueryRequest
	if !BindJSON(c, &req) {
		return
	}

	result, err := h.analytics.AdminQuery(c.Request.Context(), req.SQL, req.Params)
	if err != nil {
		RespondAppError(c, errors.NewValidationError("sql", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}
