package handlers

import (
	"net/http"
	"strconv"

	"PulseWatch/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateEndpoint registers a new endpoint for the authenticated user
func (h *Handlers) CreateEndpoint(c *gin.Context) {
	user := currentUser(c)

	var req struct {
		Name            string `json:"name" binding:"required"`
		URL             string `json:"url" binding:"required"`
		IntervalMinutes int    `json:"interval_minutes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", "Name and url are required"))
		return
	}

	endpoint, err := h.endpointService.Create(c.Request.Context(), user.ID, req.Name, req.URL, req.IntervalMinutes)
	if err != nil {
		h.logger.Warn("failed to create endpoint", "error", err, "user_id", user.ID)
		c.JSON(http.StatusBadRequest, ErrorResponse("create_failed", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, endpoint)
}

// ListEndpoints returns the user's endpoints with latest checks
func (h *Handlers) ListEndpoints(c *gin.Context) {
	user := currentUser(c)
	status := models.EndpointStatus(c.Query("status"))
	if status != models.EndpointStatusUp && status != models.EndpointStatusDown {
		status = ""
	}

	endpoints, err := h.endpointService.List(c.Request.Context(), user.ID, status)
	if err != nil {
		h.logger.Error("failed to list endpoints", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, ErrorResponse("list_failed", "Failed to list endpoints"))
		return
	}

	c.JSON(http.StatusOK, endpoints)
}

// GetEndpoint returns one endpoint with its latest check
func (h *Handlers) GetEndpoint(c *gin.Context) {
	user := currentUser(c)
	endpointID := c.Param("id")

	endpoint, err := h.endpointService.Get(c.Request.Context(), user.ID, endpointID)
	if err != nil {
		h.logger.Error("failed to get endpoint", "error", err, "endpoint_id", endpointID)
		c.JSON(http.StatusInternalServerError, ErrorResponse("get_failed", "Failed to get endpoint"))
		return
	}

	if endpoint == nil {
		c.JSON(http.StatusNotFound, ErrorResponse("not_found", "Endpoint not found"))
		return
	}

	c.JSON(http.StatusOK, endpoint)
}

// UpdateEndpoint applies a partial update
func (h *Handlers) UpdateEndpoint(c *gin.Context) {
	user := currentUser(c)
	endpointID := c.Param("id")

	var update models.EndpointUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", "Invalid update payload"))
		return
	}

	endpoint, err := h.endpointService.Update(c.Request.Context(), user.ID, endpointID, update)
	if err != nil {
		h.logger.Warn("failed to update endpoint", "error", err, "endpoint_id", endpointID)
		c.JSON(http.StatusBadRequest, ErrorResponse("update_failed", err.Error()))
		return
	}

	if endpoint == nil {
		c.JSON(http.StatusNotFound, ErrorResponse("not_found", "Endpoint not found"))
		return
	}

	c.JSON(http.StatusOK, endpoint)
}

// DeleteEndpoint removes the endpoint and its check history
func (h *Handlers) DeleteEndpoint(c *gin.Context) {
	user := currentUser(c)
	endpointID := c.Param("id")

	deleted, err := h.endpointService.Delete(c.Request.Context(), user.ID, endpointID)
	if err != nil {
		h.logger.Error("failed to delete endpoint", "error", err, "endpoint_id", endpointID)
		c.JSON(http.StatusInternalServerError, ErrorResponse("delete_failed", "Failed to delete endpoint"))
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, ErrorResponse("not_found", "Endpoint not found"))
		return
	}

	c.Status(http.StatusNoContent)
}

// ListEndpointChecks returns the endpoint's check history
func (h *Handlers) ListEndpointChecks(c *gin.Context) {
	user := currentUser(c)
	endpointID := c.Param("id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	since := c.Query("since")

	results, err := h.endpointService.ListChecks(c.Request.Context(), user.ID, endpointID, since, limit)
	if err != nil {
		h.logger.Error("failed to list checks", "error", err, "endpoint_id", endpointID)
		c.JSON(http.StatusInternalServerError, ErrorResponse("list_failed", "Failed to list checks"))
		return
	}

	if results == nil {
		endpoint, err := h.endpointService.GetOwned(c.Request.Context(), user.ID, endpointID)
		if err != nil || endpoint == nil {
			c.JSON(http.StatusNotFound, ErrorResponse("not_found", "Endpoint not found"))
			return
		}
		results = []*models.CheckResult{}
	}

	c.JSON(http.StatusOK, results)
}
