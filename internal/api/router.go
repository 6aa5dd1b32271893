// Package api assembles the HTTP surface: middleware, route registration,
// and the mapping from routes to handler closures.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/quantumleap-ai/sitekit/internal/api/handlers"
	"github.com/quantumleap-ai/sitekit/internal/auth"
	"github.com/quantumleap-ai/sitekit/internal/mailer"
	"github.com/quantumleap-ai/sitekit/internal/newsroom"
	"github.com/quantumleap-ai/sitekit/internal/storage"
)

// Deps bundles everything the router needs. All fields are required except
// Mailer, which may be unconfigured (the contact endpoint then refuses).
type Deps struct {
	Store        *storage.Store
	Auth         *auth.Manager
	Mailer       *mailer.Mailer
	Aggregator   *newsroom.Aggregator
	Rewriter     *newsroom.Rewriter
	Catalog      *newsroom.Catalog
	ContactEmail string
}

// NewRouter creates and configures the HTTP router with the public site API
// and the authenticated admin API.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Route("/api", func(api chi.Router) {
		// Public surface consumed by the marketing site.
		api.Get("/health", handlers.Health(deps.Store))
		api.Get("/settings", handlers.GetSettings(deps.Store))
		api.Get("/services", handlers.GetServices(deps.Store))
		api.Get("/projects", handlers.GetProjects(deps.Store))
		api.Get("/posts", handlers.GetPosts(deps.Store))
		api.Get("/posts/{id}", handlers.GetPost(deps.Store))
		api.Get("/products", handlers.GetProducts(deps.Store))
		api.Get("/products/{id}", handlers.GetProduct(deps.Store))
		api.Post("/contact", handlers.Contact(deps.Store, deps.Mailer, deps.ContactEmail))
		api.Post("/auth/login", handlers.Login(deps.Store, deps.Auth))

		// Everything below requires a valid bearer token.
		api.Group(func(admin chi.Router) {
			admin.Use(RequireAuth(deps.Auth))

			admin.Put("/settings", handlers.UpdateSettings(deps.Store))
			admin.Put("/settings/general", handlers.UpdateGeneralSettings(deps.Store))
			admin.Put("/settings/hero", handlers.UpdateHeroSlides(deps.Store))

			admin.Post("/services", handlers.CreateService(deps.Store))
			admin.Put("/services/{id}", handlers.UpdateService(deps.Store))
			admin.Delete("/services/{id}", handlers.DeleteService(deps.Store))

			admin.Post("/projects", handlers.CreateProject(deps.Store))
			admin.Put("/projects/{id}", handlers.UpdateProject(deps.Store))
			admin.Delete("/projects/{id}", handlers.DeleteProject(deps.Store))

			admin.Post("/posts", handlers.CreatePost(deps.Store))
			admin.Put("/posts/{id}", handlers.UpdatePost(deps.Store))
			admin.Delete("/posts/{id}", handlers.DeletePost(deps.Store))

			admin.Post("/products", handlers.CreateProduct(deps.Store))
			admin.Put("/products/{id}", handlers.UpdateProduct(deps.Store))
			admin.Delete("/products/{id}", handlers.DeleteProduct(deps.Store))

			admin.Get("/admin/users/me", handlers.GetMe(deps.Store))
			admin.Put("/admin/users/me", handlers.UpdateMe(deps.Store))
			admin.Put("/admin/users/me/password", handlers.ChangeMyPassword(deps.Store))
			admin.Get("/admin/users", handlers.GetAdmins(deps.Store))
			admin.Post("/admin/users", handlers.CreateAdmin(deps.Store))
			admin.Delete("/admin/users/{id}", handlers.DeleteAdmin(deps.Store))

			admin.Get("/admin/ai/news", handlers.GetNews(deps.Aggregator))
			admin.Post("/admin/ai/rewrite", handlers.RewriteArticle(deps.Rewriter))
			admin.Get("/admin/ai/models", handlers.GetModels(deps.Catalog))
			admin.Post("/admin/ai/import", handlers.ImportArticle())
		})
	})

	return r
}
