// Package server assembles the chi router: middleware chain, public
// resolution routes, the owner API and the administrative surface.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/app/handler"
	"github.com/atinyakov/go-link-service/internal/middleware"
)

// Deps are the wired handlers and middleware inputs the router needs.
type Deps struct {
	Logger        *zap.Logger
	Auth          middleware.TokenVerifier
	Principals    middleware.PrincipalSource
	Links         *handler.LinkHandler
	Redirect      *handler.RedirectHandler
	Admin         *handler.AdminHandler
	Health        *handler.HealthHandler
	TrustedSubnet string
}

// Init builds the router. Reserved segments are routed literally before the
// catch-all short-code patterns; the resolver additionally refuses reserved
// codes itself, so precedence never depends on route registration order.
func Init(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(d.Logger))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithAuth(d.Auth, d.Principals, d.Logger))

	r.Get("/health", d.Health.Health)
	r.Get("/ping", d.Health.Ping)

	// Public resolution.
	r.Get("/r/{code}", d.Redirect.Preview)
	r.Get("/go/{code}", d.Redirect.Follow)

	// Owner surface.
	r.Route("/api", func(r chi.Router) {
		r.Route("/links", func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Post("/", d.Links.Create)
			r.Get("/", d.Links.List)
			r.Delete("/{id}", d.Links.Delete)
			r.Get("/{id}/analytics", d.Links.Analytics)
		})

		r.With(middleware.WithSubnet(d.TrustedSubnet)).
			Get("/internal/stats", d.Admin.Stats)
	})

	// Administrative surface.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/stats", d.Admin.Stats)
		r.Get("/links/data", d.Admin.LinksData)
		r.Delete("/links/{id}", d.Admin.DeleteLink)
		r.Patch("/links/{id}/toggle", d.Admin.ToggleLink)
		r.Get("/logs/data", d.Admin.LogsData)
		r.Get("/users/data", d.Admin.UsersData)
		r.Patch("/users/{id}/toggle", d.Admin.ToggleUser)
		r.Patch("/users/{id}/role", d.Admin.ChangeRole)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	return r
}
