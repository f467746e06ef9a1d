package board

import (
	"net/http"
	"roomboard/infras/otel"
	"roomboard/internal/domains/board/model/dto"
	"roomboard/internal/domains/board/service"
	"roomboard/shared/constant"
	"roomboard/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Board
	otel    otel.Otel
}

func New(service service.Board, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/board", func(routerGroup chi.Router) {
		routerGroup.Get("/{year}/{month}", handler.GetMonth)
		routerGroup.Post("/{year}/{month}/export", handler.ExportMonth)
		routerGroup.Get("/rooms/{id}/cells/{date}", handler.GetCell)
	})
}

// GetMonth renders the booking board for a month.
// @Summary Get the month board
// @Description Days, room rows grouped by type with the booking in every cell, and staff totals.
// @Tags Board
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} response.Data[dto.MonthResponse] "Month board"
// @Success 304 "Unchanged since the ETag sent in If-None-Match"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/board/{year}/{month} [get]
func (handler *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonth")
	defer scope.End()

	req := dto.MonthRequest{}
	req.FromRequest(r)

	board, err := handler.service.Month(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get month board")

		response.WithError(w, err)

		return
	}

	response.WithCachedJSON(w, r, board)
}

// GetCell resolves one room on one day.
// @Summary Get a board cell
// @Tags Board
// @Produce json
// @Param id path string true "Room ID"
// @Param date path string true "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.CellResponse] "Board cell"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/board/rooms/{id}/cells/{date} [get]
func (handler *Handler) GetCell(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCell")
	defer scope.End()

	req := dto.CellRequest{
		RoomID: chi.URLParam(r, constant.RequestParamID),
		Date:   chi.URLParam(r, constant.RequestParamDate),
	}

	cell, err := handler.service.Cell(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get board cell")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cell)
}

// ExportMonth saves the month board to object storage.
// @Summary Export the month board
// @Description Upload the month board as JSON to board/<yyyy-mm>.json.
// @Tags Board
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 201 {object} response.Data[dto.ExportResponse] "Export location"
// @Failure 400 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/board/{year}/{month}/export [post]
// @Security BearerAuth
func (handler *Handler) ExportMonth(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportMonth")
	defer scope.End()

	req := dto.MonthRequest{}
	req.FromRequest(r)

	export, err := handler.service.Export(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export month board")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Board exported to " + export.Key)

	response.WithJSON(w, http.StatusCreated, export)
}
