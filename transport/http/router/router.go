package router

import (
	"net/http"

	"hotel/config"
	_ "hotel/docs" // registers swagger docs
	"hotel/infras/metrics"
	"hotel/internal/handlers/admin"
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/health"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/roomtype"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultMetricsRoute = "/metrics"

type DomainHandlers struct {
	Auth     auth.Handler
	Admin    admin.Handler
	RoomType roomtype.Handler
	Room     room.Handler
	Booking  booking.Handler
	Health   health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
	Metrics        metrics.Metrics
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Get("/health", r.DomainHandlers.Health.Check)
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	if r.Config.Metrics.Enable {
		route := r.Config.Metrics.Route
		if route == "" {
			route = defaultMetricsRoute
		}

		router.Method(http.MethodGet, route, r.Metrics.Handler())
	}

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)

		routerGroup.Route("/admin", func(adminGroup chi.Router) {
			adminGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

			r.DomainHandlers.Admin.AdminRouter(adminGroup)
			r.DomainHandlers.Auth.AdminRouter(adminGroup)
			r.DomainHandlers.RoomType.AdminRouter(adminGroup)
			r.DomainHandlers.Room.AdminRouter(adminGroup)
			r.DomainHandlers.Booking.AdminRouter(adminGroup)
		})
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, metrics metrics.Metrics, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
		Metrics:        metrics,
		Config:         cfg,
	}
}
