package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RunChecks is the cron trigger: probes every due endpoint and returns the
// batch counts. Persistence failures surface as a 500 so the caller can tell
// a broken store from endpoints being down.
func (h *Handlers) RunChecks(c *gin.Context) {
	summary, err := h.checkService.RunDueChecks(c.Request.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("batch run reported persistence failures", "error", err, "summary", summary)
		c.JSON(http.StatusInternalServerError, ErrorResponse("run_failed", h.internalMessage(err, "Failed to run checks")))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checked": summary.Checked,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
	})
}

// CheckNow probes one endpoint immediately, bypassing the due gate.
func (h *Handlers) CheckNow(c *gin.Context) {
	user := currentUser(c)
	endpointID := c.Param("id")

	endpoint, err := h.endpointService.GetOwned(c.Request.Context(), user.ID, endpointID)
	if err != nil {
		h.logger.Error("failed to load endpoint for manual check", "error", err, "endpoint_id", endpointID)
		c.JSON(http.StatusInternalServerError, ErrorResponse("get_failed", "Failed to load endpoint"))
		return
	}

	if endpoint == nil {
		c.JSON(http.StatusNotFound, ErrorResponse("not_found", "Endpoint not found"))
		return
	}

	result, err := h.checkService.RunCheckNow(c.Request.Context(), endpoint)
	if err != nil {
		h.logger.Error("manual check failed to persist", "error", err, "endpoint_id", endpointID)
		c.JSON(http.StatusInternalServerError, ErrorResponse("check_failed", h.internalMessage(err, "Failed to save check result")))
		return
	}

	c.JSON(http.StatusCreated, result)
}
