// Package fitflowapi предоставляет маршруты для основного приложения.
package fitflowapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/fitflow/fitflow-api/internal/api/handlers/access/checkin"
	"github.com/fitflow/fitflow-api/internal/api/handlers/account/changepassword"
	"github.com/fitflow/fitflow-api/internal/api/handlers/account/deactivate"
	"github.com/fitflow/fitflow-api/internal/api/handlers/account/updateprofile"
	"github.com/fitflow/fitflow-api/internal/api/handlers/auth/login"
	"github.com/fitflow/fitflow-api/internal/api/handlers/auth/logout"
	"github.com/fitflow/fitflow-api/internal/api/handlers/auth/me"
	"github.com/fitflow/fitflow-api/internal/api/handlers/auth/register"
	"github.com/fitflow/fitflow-api/internal/api/handlers/health"
	"github.com/fitflow/fitflow-api/internal/api/handlers/membership/membershiplist"
	"github.com/fitflow/fitflow-api/internal/api/handlers/membership/purchase"
	"github.com/fitflow/fitflow-api/internal/api/handlers/membership/resume"
	"github.com/fitflow/fitflow-api/internal/api/handlers/membership/suspend"
	"github.com/fitflow/fitflow-api/internal/api/handlers/plan/plancreate"
	"github.com/fitflow/fitflow-api/internal/api/handlers/plan/plandeactivate"
	"github.com/fitflow/fitflow-api/internal/api/handlers/plan/planlist"
	"github.com/fitflow/fitflow-api/internal/api/middlewarectx"
	"github.com/fitflow/fitflow-api/internal/models"
	authservice "github.com/fitflow/fitflow-api/internal/services/auth"
	membershipservice "github.com/fitflow/fitflow-api/internal/services/membership"
	planservice "github.com/fitflow/fitflow-api/internal/services/plan"
	"github.com/fitflow/fitflow-api/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authService *authservice.Service, membershipService *membershipservice.Service, planService *planservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.RateLimitMiddleware(logger),
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService, membershipService).ServeHTTP)
		r.Get("/plans", planlist.New(logger, planService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(authService, logger))

			r.Get("/auth/me", me.New(logger, membershipService).ServeHTTP)
			r.Put("/auth/me", updateprofile.New(logger, authService).ServeHTTP)
			r.Delete("/auth/me", deactivate.New(logger, authService).ServeHTTP)
			r.Put("/auth/password", changepassword.New(logger, authService).ServeHTTP)
			r.Post("/auth/logout", logout.New(logger, authService).ServeHTTP)

			// Управление каталогом тарифов доступно только администратору
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleAdmin))
				r.Post("/plans", plancreate.New(logger, planService).ServeHTTP)
				r.Delete("/plans/{planID}", plandeactivate.New(logger, planService).ServeHTTP)
			})

			// Членства видит владелец учётной записи или администратор
			r.Route("/accounts/{accountID}/memberships", func(r chi.Router) {
				r.Use(middlewarectx.RequireOwnerOrAdmin(logger))
				r.Post("/", purchase.New(logger, membershipService).ServeHTTP)
				r.Get("/", membershiplist.New(logger, membershipService).ServeHTTP)
			})

			// Приостановка и возобновление доступны персоналу
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleAdmin, models.RoleReceptionist))
				r.Post("/memberships/{periodID}/suspend", suspend.New(logger, membershipService).ServeHTTP)
				r.Post("/memberships/{periodID}/resume", resume.New(logger, membershipService).ServeHTTP)
			})

			// Вход в зал требует действующего членства
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireActiveMembership(membershipService, logger))
				r.Post("/access/checkin", checkin.New(logger).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
