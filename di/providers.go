package di

import (
	"roomboard/config"
	"roomboard/infras/genai"
	"roomboard/infras/jwt"
	"roomboard/infras/kafka"
	"roomboard/infras/otel"
	"roomboard/infras/redis"
	"roomboard/infras/s3"
	"roomboard/shared/cache"
	"roomboard/shared/event"
	"roomboard/transport/http/middleware"
	"roomboard/transport/http/router"

	assistantService "roomboard/internal/domains/assistant/service"
	boardService "roomboard/internal/domains/board/service"
	bookingRepository "roomboard/internal/domains/booking/repository"
	bookingService "roomboard/internal/domains/booking/service"
	roomRepository "roomboard/internal/domains/room/repository"
	roomService "roomboard/internal/domains/room/service"
	staffRepository "roomboard/internal/domains/staff/repository"
	staffService "roomboard/internal/domains/staff/service"

	assistantHandler "roomboard/internal/handlers/assistant"
	boardHandler "roomboard/internal/handlers/board"
	bookingHandler "roomboard/internal/handlers/booking"
	roomHandler "roomboard/internal/handlers/room"
	staffHandler "roomboard/internal/handlers/staff"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
	genai.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewStaffSessionMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
	wire.Bind(new(staffService.BookingCounter), new(bookingService.Booking)),
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var boardDomain = wire.NewSet(
	boardService.New,
)

var assistantDomain = wire.NewSet(
	assistantService.NewSummary,
	assistantService.NewVoice,
	wire.Bind(new(assistantService.Versioner), new(boardService.Board)),
)

var domains = wire.NewSet(
	roomDomain,
	staffDomain,
	bookingDomain,
	boardDomain,
	assistantDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	staffHandler.New,
	bookingHandler.New,
	boardHandler.New,
	assistantHandler.New,
	router.New,
)
