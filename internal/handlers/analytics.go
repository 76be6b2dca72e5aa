package handlers

import (
	"net/http"
	"time"

	"PulseWatch/internal/services"

	"github.com/gin-gonic/gin"
)

// Analytics returns time-bucketed uptime and latency series. Malformed
// since/until/group_by values degrade to defaults, never to an error.
func (h *Handlers) Analytics(c *gin.Context) {
	user := currentUser(c)

	query := services.AnalyticsQuery{
		EndpointID: c.Query("endpoint_id"),
		Since:      c.Query("since"),
		Until:      c.Query("until"),
		GroupBy:    c.DefaultQuery("group_by", "day"),
	}

	report, err := h.analyticsService.Aggregate(c.Request.Context(), user.ID, query, time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to aggregate analytics", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, ErrorResponse("analytics_failed", h.internalMessage(err, "Failed to aggregate analytics")))
		return
	}

	c.JSON(http.StatusOK, report)
}
