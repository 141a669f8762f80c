package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trackswift/internal/api/http/handlers"
	"github.com/spec-kit/trackswift/internal/auth"
	"github.com/spec-kit/trackswift/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Shipments      *handlers.ShipmentsHandler
	Orders         *handlers.OrdersHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Everything except registration, login
// and the health probes requires a live session; status updates additionally
// require the admin or manager role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/register", cfg.Auth.Register)
	app.Post("/auth/login", cfg.Auth.Login)

	authenticated := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	authenticated.Post("/auth/logout", cfg.Auth.Logout)
	authenticated.Get("/me", cfg.Shipments.Profile)

	authenticated.Post("/shipments", cfg.Shipments.Create)
	authenticated.Get("/shipments", cfg.Shipments.List)
	authenticated.Get("/shipments/:trackingID", cfg.Shipments.Get)
	authenticated.Get("/shipments/:trackingID/orders", cfg.Shipments.ListOrders)
	authenticated.Patch("/shipments/:trackingID/status",
		auth.RequireRole(domain.RoleAdmin, domain.RoleManager), cfg.Shipments.UpdateStatus)

	authenticated.Post("/orders", cfg.Orders.Create)
	authenticated.Get("/orders", cfg.Orders.List)

	authenticated.Get("/dashboard", cfg.Dashboard.Dashboard)
}
