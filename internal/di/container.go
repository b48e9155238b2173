package di

import (
	"fmt"
	"sync"

	gatewayhttp "mongo-gateway/internal/gateway/adapter/http"
	"mongo-gateway/internal/gateway/adapter/persistence/mongodb"
	"mongo-gateway/internal/gateway/config"
	"mongo-gateway/internal/gateway/usecase"
	"mongo-gateway/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// Container wires the gateway's dependencies with explicit lifecycle
// management. The database handle lives here, not in package state, so a
// failed connection surfaces at startup instead of on the first request.
type Container struct {
	mu sync.RWMutex

	// Configuration
	Config *config.Config
	// Database connection
	MongoDB *mongo.Database
	// Logger
	Logger logger.Logger

	// Gateway components
	Repository *mongodb.DataRepository
	Usecase    usecase.GatewayUsecase
	Handler    *gatewayhttp.HTTPHandler
	Auth       *gatewayhttp.AuthMiddleware
	Metrics    *gatewayhttp.Metrics
}

// NewContainer creates an empty DI container.
func NewContainer() *Container {
	return &Container{}
}

// InitializeGateway builds the repository, usecase and HTTP handler on top of
// the given database handle.
func (c *Container) InitializeGateway(mongoDB *mongo.Database, cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mongoDB == nil {
		return fmt.Errorf("MongoDB handle must be initialized before the gateway module")
	}
	if cfg == nil {
		return fmt.Errorf("configuration must be loaded before the gateway module")
	}

	c.MongoDB = mongoDB
	c.Config = cfg

	if c.Logger == nil {
		c.Logger = logger.NewLoggerWithConfig(cfg.LogLevel, cfg.LogFormat)
	}

	c.Repository = mongodb.NewDataRepository(mongoDB, c.Logger)
	c.Usecase = usecase.NewGatewayUsecase(c.Repository, c.Logger)
	c.Handler = gatewayhttp.NewGatewayHTTPHandler(c.Usecase, c.Logger)
	c.Auth = gatewayhttp.NewAuthMiddleware(cfg.APITokens)
	c.Metrics = gatewayhttp.NewMetrics()

	return nil
}

// GetHandler returns the gateway HTTP handler.
func (c *Container) GetHandler() *gatewayhttp.HTTPHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Handler
}

// GetAuth returns the auth middleware.
func (c *Container) GetAuth() *gatewayhttp.AuthMiddleware {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Auth
}

// GetMetrics returns the metrics component.
func (c *Container) GetMetrics() *gatewayhttp.Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Metrics
}

// Close releases container-held resources. The mongo client itself is owned
// and disconnected by main.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Repository = nil
	c.Usecase = nil
	c.Handler = nil
	return nil
}
