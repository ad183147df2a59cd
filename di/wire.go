//go:build wireinject
// +build wireinject

package di

import (
	"hotelbook/config"
	"hotelbook/infras/jwt"
	"hotelbook/infras/kafka"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/infras/redis"
	"hotelbook/infras/s3"
	authService "hotelbook/internal/domains/auth/service"
	hotelRepository "hotelbook/internal/domains/hotel/repository"
	hotelService "hotelbook/internal/domains/hotel/service"
	"hotelbook/internal/domains/reservation/availability"
	"hotelbook/internal/domains/reservation/event"
	reservationRepository "hotelbook/internal/domains/reservation/repository"
	reservationService "hotelbook/internal/domains/reservation/service"
	roomRepository "hotelbook/internal/domains/room/repository"
	roomService "hotelbook/internal/domains/room/service"
	userRepository "hotelbook/internal/domains/user/repository"
	userService "hotelbook/internal/domains/user/service"
	authHandler "hotelbook/internal/handlers/auth"
	hotelHandler "hotelbook/internal/handlers/hotel"
	reservationHandler "hotelbook/internal/handlers/reservation"
	roomHandler "hotelbook/internal/handlers/room"
	userHandler "hotelbook/internal/handlers/user"
	"hotelbook/permissions"
	"hotelbook/shared/cache"
	"hotelbook/shared/clock"
	"hotelbook/transport/http"
	"hotelbook/transport/http/middleware"
	"hotelbook/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Struct(new(router.Middlewares), "*"),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var catalogDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
	roomRepository.New,
	roomService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	wire.Bind(new(availability.ActiveLister), new(reservationRepository.Reservation)),
	availability.New,
	reservationService.New,
	event.NewListener,
)

var domains = wire.NewSet(
	authDomain,
	catalogDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	hotelHandler.New,
	roomHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
