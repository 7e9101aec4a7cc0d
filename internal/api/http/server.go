package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/blood-bank-service/internal/observability"
)

// ServerConfig holds app-level settings for NewApp.
type ServerConfig struct {
	Name           string
	RequestTimeout time.Duration
	Logger         *zap.Logger
	Metrics        *observability.Metrics
}

// NewApp builds the Fiber app with middlewares and routes registered.
func NewApp(cfg ServerConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, cfg.Logger, cfg.Metrics, cfg.RequestTimeout)
	routes.Metrics = cfg.Metrics
	RegisterRoutes(app, routes)
	return app
}
