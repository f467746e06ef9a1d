package assistant

import (
	"errors"
	"net/http"
	"roomboard/infras/otel"
	"roomboard/internal/domains/assistant/model/dto"
	"roomboard/internal/domains/assistant/service"
	"roomboard/shared/constant"
	"roomboard/shared/validator"
	"roomboard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	summary service.Summary
	voice   service.Voice
	otel    otel.Otel
}

func New(summary service.Summary, voice service.Voice, otel otel.Otel) Handler {
	return Handler{
		summary: summary,
		voice:   voice,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/assistant", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/tools", handler.GetTools)
		routerGroup.Post("/tool-calls", handler.CallTools)
		routerGroup.Get("/session", handler.Session)
	})
}

// GetSummary returns a short natural language summary of the hotel.
// @Summary Get the hotel summary
// @Description Always succeeds; when no summary can be produced a placeholder text is returned.
// @Tags Assistant
// @Produce json
// @Success 200 {object} response.Data[dto.SummaryResponse] "Summary"
// @Router /v1/assistant/summary [get]
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.summary.Summarize(ctx))
}

// GetTools describes the functions a voice model may call.
// @Summary Get the assistant tools
// @Tags Assistant
// @Produce json
// @Success 200 {object} response.Data[dto.ToolsResponse] "Tool declarations and system instruction"
// @Router /v1/assistant/tools [get]
// @Security BearerAuth
func (handler *Handler) GetTools(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTools")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.voice.Tools(ctx))
}

// CallTools runs tool calls issued by the voice model.
// @Summary Run assistant tool calls
// @Description Each call is answered with result "ok" or "failed".
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body dto.ToolCallsRequest true "Tool Calls Request"
// @Success 200 {object} response.Data[dto.ToolCallsResponse] "Tool responses"
// @Failure 400 {object} response.Error
// @Router /v1/assistant/tool-calls [post]
// @Security BearerAuth
func (handler *Handler) CallTools(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CallTools")
	defer scope.End()

	req := dto.ToolCallsRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res := dto.ToolCallsResponse{}
	for _, call := range req.FunctionCalls {
		res.FunctionResponses = append(res.FunctionResponses, handler.voice.Dispatch(ctx, call))
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Session keeps a websocket open for a live voice session. Each text frame carries a
// ToolCallsRequest and is answered with a ToolCallsResponse.
// @Summary Open an assistant session
// @Tags Assistant
// @Router /v1/assistant/session [get]
// @Security BearerAuth
func (handler *Handler) Session(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Session")
	defer scope.End()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upgrade to websocket")

		return
	}
	defer conn.Close()

	staff, _ := ctx.Value(constant.ContextKeyStaffID).(string)
	log.Info().Str("staff_id", staff).Msg("assistant session opened")

	for {
		req := dto.ToolCallsRequest{}

		if err := conn.ReadJSON(&req); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				log.Warn().Err(err).Msg("assistant session read failed")
			}

			break
		}

		res := dto.ToolCallsResponse{}
		for _, call := range req.FunctionCalls {
			if call == nil {
				continue
			}

			res.FunctionResponses = append(res.FunctionResponses, handler.voice.Dispatch(ctx, call))
		}

		if err := conn.WriteJSON(res); err != nil {
			log.Warn().Err(err).Msg("assistant session write failed")

			break
		}
	}

	log.Info().Str("staff_id", staff).Msg("assistant session closed")
}
