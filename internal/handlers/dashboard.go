package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DashboardStats returns point-in-time status counts and the rolling 24h
// uptime for the user's endpoints.
func (h *Handlers) DashboardStats(c *gin.Context) {
	user := currentUser(c)
	endpointID := c.Query("endpoint_id")

	stats, err := h.dashboardService.Stats(c.Request.Context(), user.ID, endpointID, time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to compute dashboard stats", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, ErrorResponse("stats_failed", h.internalMessage(err, "Failed to compute dashboard stats")))
		return
	}

	c.JSON(http.StatusOK, stats)
}
