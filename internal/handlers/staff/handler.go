package staff

import (
	"net/http"
	"roomboard/infras/otel"
	"roomboard/internal/domains/staff/model/dto"
	"roomboard/internal/domains/staff/service"
	"roomboard/shared/constant"
	"roomboard/shared/validator"
	"roomboard/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Staff
	otel    otel.Otel
}

func New(service service.Staff, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/staff", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStaff)
		routerGroup.Post("/session", handler.StartSession)
	})
}

// GetStaff lists the desk staff with how many bookings each has made.
// @Summary Get all staff
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Data[dto.GetStaffResponse] "List of staff"
// @Failure 500 {object} response.Error
// @Router /v1/staff [get]
func (handler *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStaff")
	defer scope.End()

	staff, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get staff")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, staff)
}

// StartSession selects the staff member operating the board.
// @Summary Start a staff session
// @Description Select the active staff member. Members with a PIN must supply it.
// @Tags Staff
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "Session Request"
// @Success 200 {object} response.Data[dto.SessionResponse] "Session token"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/session [post]
func (handler *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartSession")
	defer scope.End()

	req := dto.SessionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.StartSession(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("staff_id", req.StaffID).Msg("failed to start staff session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Staff session started for " + session.Staff.ID)

	response.WithJSON(w, http.StatusOK, session)
}
