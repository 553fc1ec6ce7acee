package trackagent

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/trackpro/trackagent/internal/http/handlers/auth/register"
	linkscreate "github.com/trackpro/trackagent/internal/http/handlers/links/create"
	linkslist "github.com/trackpro/trackagent/internal/http/handlers/links/list"
	linksread "github.com/trackpro/trackagent/internal/http/handlers/links/read"
	linksremove "github.com/trackpro/trackagent/internal/http/handlers/links/remove"
	linksupdate "github.com/trackpro/trackagent/internal/http/handlers/links/update"
	"github.com/trackpro/trackagent/internal/http/handlers/session/current"
	"github.com/trackpro/trackagent/internal/http/handlers/session/login"
	"github.com/trackpro/trackagent/internal/http/handlers/session/logout"
	statsdaily "github.com/trackpro/trackagent/internal/http/handlers/stats/daily"
	statsgeneral "github.com/trackpro/trackagent/internal/http/handlers/stats/general"
	statslink "github.com/trackpro/trackagent/internal/http/handlers/stats/link"
	userslist "github.com/trackpro/trackagent/internal/http/handlers/users/list"
	"github.com/trackpro/trackagent/internal/http/handlers/users/updatestatus"
	"github.com/trackpro/trackagent/internal/http/middlewarectx"
	"github.com/trackpro/trackagent/internal/session"
	"github.com/trackpro/trackagent/internal/trackapi"
)

// RegisterRoutes регистрирует все маршруты локального API.
func RegisterRoutes(r chi.Router, logger *slog.Logger, sessions *session.Manager, api *trackapi.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки; логин и регистрация под лимитером
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, rate.NewLimiter(1, 5)))
			r.Post("/session/login", login.New(logger, sessions).ServeHTTP)
			r.Post("/auth/register", register.New(logger, api).ServeHTTP)
		})
		r.Get("/session", current.New(logger, sessions).ServeHTTP)
		r.Post("/session/logout", logout.New(logger, sessions).ServeHTTP)

		// Группа с активной сессией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireSession(sessions, logger))
			r.Get("/links", linkslist.New(logger, api).ServeHTTP)
			r.Post("/links", linkscreate.New(logger, api).ServeHTTP)
			r.Get("/links/{id}", linksread.New(logger, api).ServeHTTP)
			r.Put("/links/{id}", linksupdate.New(logger, api).ServeHTTP)
			r.Delete("/links/{id}", linksremove.New(logger, api).ServeHTTP)
			r.Get("/stats", statsgeneral.New(logger, api).ServeHTTP)
			r.Get("/stats/daily", statsdaily.New(logger, api).ServeHTTP)
			r.Get("/stats/link/{id}", statslink.New(logger, api).ServeHTTP)

			// Панель администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(logger))
				r.Get("/users", userslist.New(logger, api).ServeHTTP)
				r.Patch("/users/{id}/status", updatestatus.New(logger, api).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
}
