package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a valid bearer token and installs the user on the
// context.
func (h *Handlers) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse("unauthorized", "Missing bearer token"))
			return
		}

		user, err := h.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			h.logger.Error("authentication lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse("auth_failed", "Authentication failed"))
			return
		}

		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse("unauthorized", "Invalid or expired token"))
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// CronAuthMiddleware guards the run-checks trigger with the shared secret,
// accepted as a bearer token or a "secret" query parameter. An empty
// configured secret rejects every request.
func (h *Handlers) CronAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.cronSecret == "" || !h.validCronSecret(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse("unauthorized", "Invalid or missing secret"))
			return
		}
		c.Next()
	}
}

func (h *Handlers) validCronSecret(c *gin.Context) bool {
	candidate := bearerToken(c)
	if candidate == "" {
		candidate = c.Query("secret")
	}
	if candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(h.cronSecret)) == 1
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
