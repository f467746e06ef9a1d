package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"roomboard/config"
	aiModel "roomboard/infras/genai"
	"roomboard/infras/otel"
	"roomboard/internal/domains/assistant/model/dto"
	bookingDto "roomboard/internal/domains/booking/model/dto"
	bookingRepo "roomboard/internal/domains/booking/repository"
	roomRepo "roomboard/internal/domains/room/repository"
	"roomboard/shared"
	"roomboard/shared/cache"
	"roomboard/shared/constant"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	SummaryUnavailable = "AI Summary unavailable (API Key not set)."
	SummaryFailed      = "Failed to fetch smart summary."
	SummaryEmpty       = "No summary available."

	SummaryCachePrefix = "assistant:summary"
)

// Versioner reports the current board version and the process it belongs to.
type Versioner interface {
	Version() uint64
	Instance() string
}

type Summary interface {
	// Summarize never fails; problems with the model come back as placeholder text.
	Summarize(ctx context.Context) dto.SummaryResponse
}

type summaryImpl struct {
	model    aiModel.Model
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	board    Versioner
	cache    cache.RedisCache
	cfg      *config.Config
	otel     otel.Otel

	// latest request wins: starting a call cancels the one in flight
	mu       sync.Mutex
	inflight uint64
	cancel   context.CancelFunc
}

// NewSummary builds the summary collaborator. model may be nil when no API key is configured.
func NewSummary(model aiModel.Model, rooms roomRepo.Room, bookings bookingRepo.Booking, board Versioner, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Summary {
	return &summaryImpl{
		model:    model,
		rooms:    rooms,
		bookings: bookings,
		board:    board,
		cache:    cache,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *summaryImpl) Summarize(ctx context.Context) (res dto.SummaryResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summarize")
	defer scope.End()

	res.Version = s.board.Version()

	if s.model == nil {
		res.Summary = SummaryUnavailable

		return res
	}

	key := shared.BuildCacheKey(SummaryCachePrefix, s.board.Instance(), res.Version)
	if err := s.cache.Get(ctx, key, &res.Summary); err == nil {
		res.Cached = true

		return res
	}

	// a change while the snapshot is taken leaves the prompt between two versions
	prompt := s.prompt(ctx)
	stable := s.board.Version() == res.Version

	callCtx, done := s.begin(ctx)
	defer done()

	text, err := s.model.Generate(callCtx, prompt)

	switch {
	case err != nil && errors.Is(context.Cause(callCtx), errSuperseded):
		scope.AddEvent("summary superseded by a newer request")

		res.Summary = SummaryFailed
		res.Superseded = true
	case err != nil:
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to fetch smart summary")

		res.Summary = SummaryFailed
	case strings.TrimSpace(text) == constant.Empty:
		res.Summary = SummaryEmpty
	default:
		res.Summary = text

		if !stable {
			scope.AddEvent("board changed during snapshot, summary not cached")

			break
		}

		if err := s.cache.Save(ctx, key, text, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache summary")
		}
	}

	return res
}

var errSuperseded = errors.New("superseded by a newer summary request")

// begin cancels any outstanding call and returns a context bounded by the configured timeout.
func (s *summaryImpl) begin(ctx context.Context) (context.Context, func()) {
	callCtx, cancel := context.WithCancelCause(ctx)
	callCtx, timeoutCancel := context.WithTimeout(callCtx, time.Duration(s.cfg.External.GenAI.TimeoutSeconds)*time.Second)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}

	s.inflight++
	id := s.inflight
	s.cancel = func() { cancel(errSuperseded) }
	s.mu.Unlock()

	return callCtx, func() {
		timeoutCancel()
		cancel(nil)

		s.mu.Lock()
		if s.inflight == id {
			s.cancel = nil
		}
		s.mu.Unlock()
	}
}

type summaryRoom struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (s *summaryImpl) prompt(ctx context.Context) string {
	rooms := s.rooms.GetAll(ctx)

	roomRows := make([]summaryRoom, len(rooms))
	for i, room := range rooms {
		roomRows[i] = summaryRoom{Name: room.Name, Status: string(room.Status)}
	}

	var bookings bookingDto.CreateBookingResponse
	bookings.FromModels(s.bookings.Find(ctx, nil))

	roomJSON, _ := json.Marshal(roomRows)
	bookingJSON, _ := json.Marshal(bookings.Bookings)

	return fmt.Sprintf("You are a hotel management assistant. Given the current room occupancy and bookings, "+
		"provide a concise 2-sentence summary of the hotel status.\nRooms: %s\nBookings: %s", roomJSON, bookingJSON)
}
