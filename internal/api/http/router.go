package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/municipal-services/complaint-service/internal/api/http/handlers"
	"github.com/municipal-services/complaint-service/internal/auth"
	"github.com/municipal-services/complaint-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	Staff          *handlers.StaffComplaintsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes: customers file, query, and cancel;
// employees list their office's complaints and attend them; administrators
// see everything, edit anything, and pull reports.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/customers/login", cfg.Auth.CustomerLogin)
	authGroup.Post("/employees/login", cfg.Auth.EmployeeLogin)

	complaints := app.Group("/complaints", cfg.AuthMiddleware.Handle)

	customer := complaints.Group("", auth.RequireRole(domain.RoleCustomer))
	customer.Post("/", cfg.Complaints.Create)
	customer.Get("/mine", cfg.Complaints.Query)
	customer.Patch("/:id/cancel", cfg.Complaints.Cancel)

	employee := complaints.Group("", auth.RequireRole(domain.RoleEmployee, domain.RoleAdmin))
	employee.Get("/office", cfg.Staff.ListForOffice)
	employee.Put("/:id/attend", cfg.Staff.Attend)

	admin := complaints.Group("", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/", cfg.Staff.ListAll)
	admin.Get("/:id", cfg.Staff.Get)
	admin.Patch("/:id", cfg.Staff.Modify)

	offices := app.Group("/offices", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	offices.Get("/", cfg.Staff.ListOffices)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	reports.Get("/statistics", cfg.Reports.Statistics)
	reports.Get("/:format?", cfg.Reports.Generate)
}
