//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"stayhub/config"
	"stayhub/infras/jwt"
	"stayhub/infras/kafka"
	"stayhub/infras/otel"
	"stayhub/infras/postgres"
	"stayhub/infras/redis"
	"stayhub/infras/s3"
	"stayhub/infras/urway"
	"stayhub/permissions"
	"stayhub/shared/cache"
	"stayhub/shared/imageopt"
	"stayhub/shared/media"
	gRepository "stayhub/shared/repository"
	"stayhub/transport/http"
	"stayhub/transport/http/middleware"
	"stayhub/transport/http/router"

	authService "stayhub/internal/domains/auth/service"
	bookingRepository "stayhub/internal/domains/booking/repository"
	bookingService "stayhub/internal/domains/booking/service"
	galleryRepository "stayhub/internal/domains/gallery/repository"
	galleryService "stayhub/internal/domains/gallery/service"
	partnerRepository "stayhub/internal/domains/partner/repository"
	partnerService "stayhub/internal/domains/partner/service"
	paymentRepository "stayhub/internal/domains/payment/repository"
	paymentService "stayhub/internal/domains/payment/service"
	pricingRepository "stayhub/internal/domains/pricing/repository"
	pricingService "stayhub/internal/domains/pricing/service"
	propertyRepository "stayhub/internal/domains/property/repository"
	propertyService "stayhub/internal/domains/property/service"
	roomRepository "stayhub/internal/domains/room/repository"
	roomService "stayhub/internal/domains/room/service"
	settingRepository "stayhub/internal/domains/setting/repository"
	settingService "stayhub/internal/domains/setting/service"
	unitService "stayhub/internal/domains/unit/service"
	userRepository "stayhub/internal/domains/user/repository"
	userService "stayhub/internal/domains/user/service"

	authHandler "stayhub/internal/handlers/auth"
	bookingHandler "stayhub/internal/handlers/booking"
	galleryHandler "stayhub/internal/handlers/gallery"
	healthHandler "stayhub/internal/handlers/health"
	partnerHandler "stayhub/internal/handlers/partner"
	paymentHandler "stayhub/internal/handlers/payment"
	pricingHandler "stayhub/internal/handlers/pricing"
	propertyHandler "stayhub/internal/handlers/property"
	roomHandler "stayhub/internal/handlers/room"
	settingHandler "stayhub/internal/handlers/setting"
	userHandler "stayhub/internal/handlers/user"
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
	s3.New,
	kafka.New,
	urway.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	imageopt.New,
	media.New,
)

var repositories = wire.NewSet(
	gRepository.NewTransactor,
	userRepository.New,
	propertyRepository.New,
	galleryRepository.New,
	roomRepository.New,
	pricingRepository.New,
	bookingRepository.New,
	paymentRepository.New,
	partnerRepository.New,
	settingRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	userService.New,
	propertyService.New,
	galleryService.New,
	roomService.New,
	unitService.New,
	pricingService.New,
	bookingService.New,
	paymentService.New,
	partnerService.New,
	settingService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	propertyHandler.New,
	galleryHandler.New,
	roomHandler.New,
	pricingHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	partnerHandler.New,
	settingHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
