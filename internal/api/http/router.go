package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-passport/internal/api/http/handlers"
	"github.com/spec-kit/tenant-passport/internal/auth"
	"github.com/spec-kit/tenant-passport/internal/routing"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Roles          *handlers.RolesHandler
	Pages          *handlers.PagesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires the navigation surface and its operations. Identify
// runs on every route so page gating can see the session without requiring
// one; mutating auth/role endpoints require a live session themselves.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.AuthMiddleware.Identify)

	app.Get(routing.PathHome, cfg.Pages.Home)

	app.Get(routing.PathAuth, cfg.Pages.AuthPage)
	app.Post("/auth/signup", cfg.Auth.SignUp)
	app.Post("/auth/signin", cfg.Auth.SignIn)
	app.Post("/auth/signout", cfg.Auth.SignOut)

	app.Get(routing.PathChooseRole, cfg.Pages.ChooseRole)
	app.Post(routing.PathChooseRole, cfg.Roles.Choose)
	app.Delete(routing.PathChooseRole, cfg.Roles.Clear)
	app.Get("/role", cfg.Roles.Current)

	app.Get(routing.PathSubmit, cfg.Pages.SubmitPage)
	app.Post(routing.PathSubmit, cfg.Pages.Submit)

	app.Get(routing.PathDashboard, cfg.Pages.Dashboard)
	app.Post("/dashboard/tickets/:id/status", cfg.Pages.UpdateTicketStatus)
	app.Post("/dashboard/reset", cfg.Pages.ResetTickets)
}
