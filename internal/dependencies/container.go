package dependencies

import (
	"context"
	"fmt"
	"log/slog"

	"PulseWatch/internal/config"
	"PulseWatch/internal/probe"
	"PulseWatch/internal/services"
	"PulseWatch/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Container wires config, storage and services together.
type Container struct {
	// Config
	Config *config.Config

	// Logger
	Logger *slog.Logger

	// Storage
	EndpointStore storage.EndpointStore
	ResultStore   storage.ResultStore
	UserStore     storage.UserStore
	Cache         storage.Cache

	// Services
	CheckService     *services.CheckService
	EndpointService  *services.EndpointService
	AnalyticsService *services.AnalyticsService
	DashboardService *services.DashboardService
	AuthService      *services.AuthService

	// Database connections
	DB *pgxpool.Pool
}

func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: log,
	}

	if err := container.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := container.initCache(); err != nil {
		return nil, err
	}

	container.initStorage()
	container.initServices()

	slog.Info("Dependency container initialized successfully")
	return container, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	db, err := storage.NewPostgres(ctx, &c.Config.Database, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := storage.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	c.DB = db
	return nil
}

func (c *Container) initCache() error {
	cache, err := storage.NewRedisCache(&c.Config.Redis, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c.Cache = cache
	return nil
}

func (c *Container) initStorage() {
	c.EndpointStore = storage.NewEndpointStore(c.DB)
	c.ResultStore = storage.NewResultStore(c.DB)
	c.UserStore = storage.NewUserStore(c.DB)
}

func (c *Container) initServices() {
	logger := c.Logger

	prober := probe.New(c.Config.Checker.Timeout)

	c.CheckService = services.NewCheckService(
		c.EndpointStore,
		c.ResultStore,
		prober,
		services.CheckServiceConfig{
			Concurrency: c.Config.Checker.Concurrency,
		},
		logger.With("service", "check"),
	)

	c.EndpointService = services.NewEndpointService(
		c.EndpointStore,
		c.ResultStore,
		logger.With("service", "endpoint"),
	)

	c.AnalyticsService = services.NewAnalyticsService(
		c.EndpointStore,
		c.ResultStore,
		logger.With("service", "analytics"),
	)

	c.DashboardService = services.NewDashboardService(
		c.EndpointStore,
		c.ResultStore,
		c.Cache,
		services.DashboardServiceConfig{
			CacheTTL: c.Config.Cache.TTL,
		},
		logger.With("service", "dashboard"),
	)

	c.AuthService = services.NewAuthService(
		c.UserStore,
		services.AuthServiceConfig{
			JWTSecret: c.Config.Auth.JWTSecret,
			TokenTTL:  c.Config.Auth.TokenTTL,
		},
		logger.With("service", "auth"),
	)
}

// Close shuts down all connections.
func (c *Container) Close() error {
	var errs []error

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
