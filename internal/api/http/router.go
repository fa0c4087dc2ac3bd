package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/http/handlers"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Hospitals      *handlers.HospitalsHandler
	Drafts         *handlers.DraftsHandler
	Cases          *handlers.CasesHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)
	protected.Get("/metrics", auth.RequireAdmin(), cfg.Health.Metrics)

	hospitals := protected.Group("/hospitals")
	hospitals.Get("/", cfg.Hospitals.List)
	hospitals.Get("/:id", cfg.Hospitals.Get)
	hospitals.Post("/", auth.RequireAdmin(), cfg.Hospitals.Create)
	hospitals.Put("/:id", auth.RequireAdmin(), cfg.Hospitals.Update)

	users := protected.Group("/users", auth.RequireAdmin())
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Post("/", auth.RequireRole(domain.RoleSuperAdmin), cfg.Users.Create)
	users.Put("/:id", auth.RequireRole(domain.RoleSuperAdmin), cfg.Users.Update)

	drafts := protected.Group("/drafts")
	drafts.Post("/", cfg.Drafts.Create)
	drafts.Get("/", cfg.Drafts.List)
	drafts.Get("/:id", cfg.Drafts.Get)
	drafts.Delete("/:id", cfg.Drafts.Delete)
	drafts.Post("/:id/save", cfg.Drafts.Save)
	drafts.Put("/:id/form", cfg.Drafts.UpdateForm)
	drafts.Post("/:id/blocks", cfg.Drafts.AddBlock)
	drafts.Put("/:id/blocks/:blockId", cfg.Drafts.UpdateBlock)
	drafts.Delete("/:id/blocks/:blockId", cfg.Drafts.RemoveBlock)
	drafts.Post("/:id/blocks/:blockId/save", cfg.Drafts.SaveBlock)
	drafts.Post("/:id/blocks/:blockId/media/:kind", cfg.Drafts.AddMedia)
	drafts.Get("/:id/blocks/:blockId/media/:kind/:mediaId", cfg.Drafts.ViewMedia)
	drafts.Delete("/:id/blocks/:blockId/media/:kind/:mediaId", cfg.Drafts.RemoveMedia)
	drafts.Post("/:id/saved/:index/edit", cfg.Drafts.EditSaved)
	drafts.Delete("/:id/saved/:index", cfg.Drafts.RemoveSaved)
	drafts.Post("/:id/submit", cfg.Drafts.Submit)

	cases := protected.Group("/cases")
	cases.Get("/", cfg.Cases.List)
	cases.Get("/:id", cfg.Cases.Get)
	cases.Post("/:id/edit", cfg.Cases.Edit)
	cases.Post("/:id/review", auth.RequireAdmin(), cfg.Cases.Review)
	cases.Post("/:id/victims/:index/review", cfg.Cases.ReviewVictim)
	cases.Post("/:id/assign", auth.RequireAdmin(), cfg.Cases.Assign)
	cases.Get("/:id/history", cfg.Cases.History)
	cases.Get("/:id/media", cfg.Cases.ListMedia)
	cases.Get("/:id/media/:mediaId", cfg.Cases.GetMedia)
	cases.Get("/:id/media/:mediaId/content", cfg.Cases.MediaContent)
	cases.Delete("/:id/media/:mediaId", cfg.Cases.DeleteMedia)

	reports := protected.Group("/reports")
	reports.Get("/summary", cfg.Reports.Summary)
	reports.Get("/cases.xlsx", cfg.Reports.Export)
}
