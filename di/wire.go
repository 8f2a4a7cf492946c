//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"

	adminRepository "hotel/internal/domains/admin/repository"
	adminService "hotel/internal/domains/admin/service"
	authService "hotel/internal/domains/auth/service"
	availabilityService "hotel/internal/domains/availability/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	roomTypeRepository "hotel/internal/domains/roomtype/repository"
	roomTypeService "hotel/internal/domains/roomtype/service"
	seedService "hotel/internal/domains/seed/service"
	statisticsService "hotel/internal/domains/statistics/service"

	adminHandler "hotel/internal/handlers/admin"
	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	healthHandler "hotel/internal/handlers/health"
	roomHandler "hotel/internal/handlers/room"
	roomTypeHandler "hotel/internal/handlers/roomtype"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	roomTypeRepository.New,
	roomRepository.New,
	bookingRepository.New,
	adminRepository.New,
)

var domains = wire.NewSet(
	repositories,
	roomTypeService.New,
	roomService.New,
	bookingService.New,
	availabilityService.New,
	statisticsService.New,
	adminService.New,
	authService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	adminHandler.New,
	roomTypeHandler.New,
	roomHandler.New,
	bookingHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeSeeder() seedService.Seed {
	wire.Build(
		config.Get,
		postgres.New,
		postgres.NewTransactor,
		otel.New,
		redis.New,
		sharedHelpers,
		repositories,
		adminService.New,
		seedService.New,
	)

	return nil
}
