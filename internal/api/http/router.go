package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/blood-bank-service/internal/api/http/handlers"
	"github.com/spec-kit/blood-bank-service/internal/auth"
	"github.com/spec-kit/blood-bank-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Appointments *handlers.AppointmentsHandler
	Requests     *handlers.RequestsHandler
	Inventory    *handlers.InventoryHandler
	Gate         *auth.Gate
	Metrics      *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if reg := cfg.Metrics.Registry(); reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	app.Get("/user", cfg.Gate.Handle, cfg.User.Me)

	appointments := app.Group("/appointments", cfg.Gate.Handle)
	appointments.Get("", cfg.Appointments.List)
	appointments.Post("", cfg.Appointments.Create)

	requests := app.Group("/requests", cfg.Gate.Handle)
	requests.Get("", cfg.Requests.List)
	requests.Post("", cfg.Requests.Create)

	inventory := app.Group("/inventory", cfg.Gate.Handle)
	inventory.Get("", cfg.Inventory.List)
	inventory.Post("", cfg.Inventory.Upsert)
}
