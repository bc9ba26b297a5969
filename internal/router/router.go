package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-api/internal/config"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/metrics"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
)

type Handlers struct {
	Status       *handler.StatusHandler
	Auth         *handler.AuthHandler
	Projects     *handler.ProjectHandler
	Skills       *handler.SkillHandler
	Certificates *handler.CertificateHandler
	Messages     *handler.MessageHandler
	Dashboard    *handler.DashboardHandler
	Audit        *handler.AuditHandler
}

// New builds the HTTP surface. Everything under /api/admin except the login
// route passes through guard.Require, including the 404 and 405 fallbacks.
func New(cfg *config.Config, guard *middleware.AuthGuard, m *metrics.Metrics, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM)
	loginLimiter := middleware.NewLoginWindowLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow, nil)

	r.Use(middleware.Recovery)
	r.Use(middleware.TrustedProxies(cfg.TrustedProxies))
	r.Use(middleware.Logging)
	r.Use(m.Instrument)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)

	r.NotFound(h.Status.NotFound)
	r.MethodNotAllowed(h.Status.MethodNotAllowed)

	r.Get("/health", h.Status.Health)
	r.Get("/", h.Status.Root)
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		api.Use(rateLimitMiddleware.Handler)

		api.Get("/", h.Status.API)
		api.Get("/projects", h.Projects.ListPublic)
		api.Get("/projects/{id}", h.Projects.GetPublic)
		api.Get("/skills", h.Skills.ListPublic)
		api.Get("/certificates", h.Certificates.ListPublic)
		api.With(middleware.ContactRateLimit(cfg.ContactRateLimit)).Post("/contact", h.Messages.Submit)

		api.Route("/admin", func(admin chi.Router) {
			// Unknown admin paths and methods are only revealed to callers
			// that pass the guard.
			admin.NotFound(guard.Require(http.HandlerFunc(h.Status.NotFound)).ServeHTTP)
			admin.MethodNotAllowed(guard.Require(http.HandlerFunc(h.Status.MethodNotAllowed)).ServeHTTP)

			admin.With(loginLimiter.Handler).Post("/auth/login", h.Auth.Login)

			admin.Group(func(guarded chi.Router) {
				guarded.Use(guard.Require)

				staff := guard.RequireRoles(model.RoleAdmin, model.RoleModerator)
				adminOnly := guard.RequireRoles(model.RoleAdmin)

				guarded.Get("/auth/verify", h.Auth.Verify)
				guarded.With(staff).Get("/dashboard/stats", h.Dashboard.Stats)
				guarded.With(adminOnly).Get("/audit", h.Audit.List)

				guarded.With(staff).Get("/projects", h.Projects.List)
				guarded.With(adminOnly).Post("/projects", h.Projects.Create)
				guarded.With(adminOnly).Put("/projects/{id}", h.Projects.Update)
				guarded.With(adminOnly).Delete("/projects/{id}", h.Projects.Delete)

				guarded.With(staff).Get("/skills", h.Skills.List)
				guarded.With(adminOnly).Post("/skills", h.Skills.Create)
				guarded.With(adminOnly).Put("/skills/{id}", h.Skills.Update)
				guarded.With(adminOnly).Delete("/skills/{id}", h.Skills.Delete)

				guarded.With(staff).Get("/certificates", h.Certificates.List)
				guarded.With(adminOnly).Post("/certificates", h.Certificates.Create)
				guarded.With(adminOnly).Put("/certificates/{id}", h.Certificates.Update)
				guarded.With(adminOnly).Delete("/certificates/{id}", h.Certificates.Delete)

				guarded.With(staff).Get("/messages", h.Messages.List)
				guarded.With(staff).Put("/messages/{id}/status", h.Messages.UpdateStatus)
				guarded.With(adminOnly).Delete("/messages/{id}", h.Messages.Delete)
			})
		})
	})

	return r
}
