package room

import (
	"net/http"
	"roomboard/infras/otel"
	"roomboard/internal/domains/room/model/dto"
	"roomboard/internal/domains/room/service"
	"roomboard/shared/constant"
	"roomboard/shared/validator"
	"roomboard/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Patch("/{id}/status", handler.SetStatus)
		routerGroup.Post("/{id}/status/cycle", handler.CycleStatus)
	})
}

// GetRooms lists the rooms in board order.
// @Summary Get all rooms
// @Description Retrieve every room, optionally only those of one type.
// @Tags Room
// @Accept json
// @Produce json
// @Param type query string false "Room type (Twin Room, Double Bed)"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	rooms, err := handler.service.List(ctx, r.URL.Query().Get(constant.RequestParamType))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rooms retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Description Retrieve a room by its unique identifier.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// SetStatus moves a room straight to the requested status.
// @Summary Set room status
// @Description Set a room to any status, regardless of its current one.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.SetStatusRequest true "Set Status Request"
// @Success 200 {object} response.Data[dto.RoomResponse] "Updated room"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	req := dto.SetStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.SetStatus(ctx, id, req.Status, constant.Empty)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set room status")

		response.WithError(w, err)

		return
	}

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	scope.AddEvent("Room status set to " + room.Status + " by staff " + staff)

	response.WithJSON(w, http.StatusOK, room)
}

// CycleStatus advances a room to its next status.
// @Summary Cycle room status
// @Description Advance a room along Ready, Occupied, Cleaning, Out of Order and back to Ready.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Updated room"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/status/cycle [post]
// @Security BearerAuth
func (handler *Handler) CycleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CycleStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	room, err := handler.service.CycleStatus(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cycle room status")

		response.WithError(w, err)

		return
	}

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	scope.AddEvent("Room status cycled to " + room.Status + " by staff " + staff)

	response.WithJSON(w, http.StatusOK, room)
}
