package router

import (
	"roomboard/internal/handlers/assistant"
	"roomboard/internal/handlers/board"
	"roomboard/internal/handlers/booking"
	"roomboard/internal/handlers/room"
	"roomboard/internal/handlers/staff"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Room      room.Handler
	Staff     staff.Handler
	Booking   booking.Handler
	Board     board.Handler
	Assistant assistant.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Board.Router(routerGroup)
		r.DomainHandlers.Assistant.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
