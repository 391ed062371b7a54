// Package httpapi wires the route table. The set of routes is closed: chi
// matches against this fixed table and everything else falls through to the
// JSON not_found handler.
package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

func NewRouter(app *handlers.App, verifier middleware.TokenVerifier, rateLimitPerMin int) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer, middleware.RequestID, middleware.Logger(app.Logger))
	if rateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(rateLimitPerMin, time.Minute))
	}

	r.Get("/health", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier))
		r.Post("/auth/verify", app.AuthVerify)
		r.Post("/itinerary", app.CreateItinerary)
		r.Post("/admin/set-role", app.AdminSetRole)
		r.Post("/admin/set-allowlist", app.AdminSetAllowlist)
	})

	r.NotFound(app.NotFound)
	r.MethodNotAllowed(app.NotFound)

	return r
}
