package handlers

import (
	"errors"
	"net/http"

	"PulseWatch/internal/services"

	"github.com/gin-gonic/gin"
)

// Register creates an account and returns the user with an access token
func (h *Handlers) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", "username and password required"))
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, ErrorResponse("username_taken", "Username already taken"))
			return
		}
		h.logger.Error("registration failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, ErrorResponse("register_failed", h.internalMessage(err, "Failed to register")))
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse("Account created", gin.H{
		"user":   user,
		"access": token,
	}))
}

// Login verifies credentials and returns the user with an access token
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", "username and password required"))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse("invalid_credentials", "Invalid credentials"))
			return
		}
		h.logger.Error("login failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, ErrorResponse("login_failed", h.internalMessage(err, "Failed to log in")))
		return
	}

	c.JSON(http.StatusOK, SuccessResponse("Logged in", gin.H{
		"user":   user,
		"access": token,
	}))
}

// Me returns the authenticated identity
func (h *Handlers) Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}
