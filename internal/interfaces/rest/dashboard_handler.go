package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/franchisepulse/backend/internal/application/services"
	"github.com/franchisepulse/backend/pkg/errors"
)

// DashboardHandler serves the aggregate views the dashboard renders.
type DashboardHandler struct {
	analytics *services.AnalyticsService
	queue     services.EventQueue
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(analytics *services.AnalyticsService, queue services.EventQueue) *DashboardHandler {
	return &DashboardHandler{analytics: analytics, queue: queue}
}

// KPIs handles GET /api/dashboard/kpis
func (h *DashboardHandler) KPIs(c *gin.Context) {
	kpis, err := h.analytics.KPIs(c.Request.Context())
	if err != nil {
		RespondAppError(c, errors.NewInternalError("failed to compute KPIs", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"kpis": kpis})
}

// Leaderboard handles GET /api/dashboard/leaderboard?limit=N
func (h *DashboardHandler) Leaderboard(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			RespondAppError(c, errors.NewValidationError("limit", "must be an integer between 1 and 500"))
			return
		}
		limit = parsed
	}

	entries, err := h.analytics.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		RespondAppError(c, errors.NewInternalError("failed to build leaderboard", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// Series handles GET /api/dashboard/series?titles=a,b&from=&to=&resample=weekly
func (h *DashboardHandler) Series(c *gin.Context) {
	rawTitles := c.Query("titles")
	if rawTitles == "" {
		RespondAppError(c, errors.NewValidationError("titles", "at least one title is required"))
		return
	}
	var titles []string
	for _, title := range strings.Split(rawTitles, ",") {
		if title = strings.TrimSpace(title); title != "" {
			titles = append(titles, title)
		}
	}

	from, err := parseTimestamp(c.Query("from"), 0)
	if err != nil {
		RespondAppError(c, errors.NewValidationError("from", "must be a unix timestamp"))
		return
	}
	to, err := parseTimestamp(c.Query("to"), 1<<62)
	if err != nil {
		RespondAppError(c, errors.NewValidationError("to", "must be a unix timestamp"))
		return
	}

	resampleWeekly := c.Query("resample") == "weekly"
	series, err := h.analytics.Series(c.Request.Context(), titles, from, to, resampleWeekly)
	if err != nil {
		RespondAppError(c, errors.NewInternalError("failed to load series", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

// Lifecycle handles GET /api/dashboard/lifecycle
func (h *DashboardHandler) Lifecycle(c *gin.Context) {
	entries, err := h.analytics.Lifecycle(c.Request.Context())
	if err != nil {
		RespondAppError(c, errors.NewInternalError("failed to classify lifecycles", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"lifecycle": entries})
}

// Volatility handles GET /api/dashboard/volatility
func (h *DashboardHandler) Volatility(c *gin.Context) {
	entries, err := h.analytics.Volatility(c.Request.Context())
	if err != nil {
		RespondAppError(c, errors.NewInternalError("failed to compute volatility", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"volatility": entries})
}

// QueueDepth handles GET /api/queue/depth
func (h *DashboardHandler) QueueDepth(c *gin.Context) {
	depth, err := h.queue.QueueDepth(c.Request.Context())
	if err != nil {
		RespondAppError(c, errors.NewInternalError("failed to read queue depth", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"depth": depth})
}

func parseTimestamp(raw string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
