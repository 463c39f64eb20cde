package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/itchan-dev/postadmin/frontend/internal/handler"
	frontend_mw "github.com/itchan-dev/postadmin/frontend/internal/middleware"
	"github.com/itchan-dev/postadmin/frontend/internal/setup"
	mw "github.com/itchan-dev/postadmin/shared/middleware"
	"github.com/itchan-dev/postadmin/shared/middleware/metrics"
)

func SetupRouter(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()
	cookies := frontend_mw.CookieConfig{SecureCookies: deps.Public.SecureCookies}

	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeadersWithCSP(deps.Public.SecureCookies, mw.AdminCSP))

	r.Get("/health", handler.HealthHandler)
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(frontend_mw.Session(cookies, deps.Public.SessionTTL))
		r.Use(frontend_mw.GenerateCSRFToken(cookies))
		r.Use(mw.RateLimit(deps.RateLimiter, mw.GetIP))
		r.Use(frontend_mw.ValidateCSRFToken())

		r.Get("/", handler.IndexGetHandler)
		r.Get("/posts", deps.Handler.PostsGetHandler)
		r.Post("/posts/{id}/edit", deps.Handler.EditPostHandler)
		r.Post("/posts/{id}/delete", deps.Handler.DeletePostHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return r
}
