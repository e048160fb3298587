package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drakehanguyen/devpockit/internal/api/http/handlers"
	"github.com/drakehanguyen/devpockit/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	APIPrefix      string
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tools          *handlers.ToolsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group(cfg.APIPrefix)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	tools := api.Group("/tools")
	tools.Post("/json/format", cfg.Tools.FormatJSON)
	tools.Post("/yaml/convert", cfg.Tools.ConvertYAML)
	tools.Post("/uuid/generate", cfg.Tools.GenerateUUID)
	tools.Get("/health", cfg.Tools.Health)
}
