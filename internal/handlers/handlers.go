package handlers

import (
	"log/slog"

	"PulseWatch/internal/dependencies"
	"PulseWatch/internal/models"
	"PulseWatch/internal/services"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	checkService     *services.CheckService
	endpointService  *services.EndpointService
	analyticsService *services.AnalyticsService
	dashboardService *services.DashboardService
	authService      *services.AuthService
	cronSecret       string
	debug            bool
	logger           *slog.Logger
}

func NewHandlers(container *dependencies.Container) *Handlers {
	return &Handlers{
		checkService:     container.CheckService,
		endpointService:  container.EndpointService,
		analyticsService: container.AnalyticsService,
		dashboardService: container.DashboardService,
		authService:      container.AuthService,
		cronSecret:       container.Config.Checker.CronSecret,
		debug:            container.Config.Server.Mode == "debug",
		logger:           container.Logger.With("component", "handlers"),
	}
}

// currentUser returns the authenticated user installed by AuthMiddleware.
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get("user")
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// internalMessage hides error detail outside debug mode.
func (h *Handlers) internalMessage(err error, fallback string) string {
	if h.debug && err != nil {
		return err.Error()
	}
	return fallback
}
