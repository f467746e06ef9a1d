package service_test

import (
	"context"
	"errors"
	"roomboard/config"
	aiMocks "roomboard/infras/genai/mocks"
	"roomboard/infras/otel/mocks"
	"roomboard/internal/domains/assistant/model/dto"
	"roomboard/internal/domains/assistant/service"
	bookingRepo "roomboard/internal/domains/booking/repository"
	roomRepo "roomboard/internal/domains/room/repository"
	"roomboard/internal/seed"
	"roomboard/shared/cache"
	cacheMocks "roomboard/shared/cache/mocks"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixedVersion uint64

func (v fixedVersion) Version() uint64 {
	return uint64(v)
}

func (v fixedVersion) Instance() string {
	return "front-desk"
}

// movingVersion advances on every read, as if the board changed between two reads.
type movingVersion struct {
	next uint64
}

func (v *movingVersion) Version() uint64 {
	v.next++

	return v.next
}

func (v *movingVersion) Instance() string {
	return "front-desk"
}

func summaryDeps(t *testing.T, timeoutSeconds int) (roomRepo.Room, bookingRepo.Booking, *config.Config) {
	t.Helper()

	rooms := roomRepo.New(mocks.NewOtel())
	require.NoError(t, rooms.InsertBulk(context.Background(), seed.Rooms()))

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.External.GenAI.TimeoutSeconds = timeoutSeconds

	return rooms, bookingRepo.New(mocks.NewOtel()), cfg
}

func TestSummarize_WithoutModel(t *testing.T) {
	rooms, bookings, cfg := summaryDeps(t, 5)
	svc := service.NewSummary(nil, rooms, bookings, fixedVersion(3), cache.NewNoopCache(), cfg, mocks.NewOtel())

	res := svc.Summarize(context.Background())

	assert.Equal(t, service.SummaryUnavailable, res.Summary)
	assert.Equal(t, uint64(3), res.Version)
}

func TestSummarize_Placeholders(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		err   error
		want  string
		saved bool
	}{
		{name: "model error", err: errors.New("quota exceeded"), want: service.SummaryFailed},
		{name: "empty text", text: "  ", want: service.SummaryEmpty},
		{name: "summary", text: "All rooms are ready. No guests tonight.", want: "All rooms are ready. No guests tonight.", saved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			model := aiMocks.NewMockModel(ctrl)
			redis := cacheMocks.NewMockRedisCache(ctrl)
			rooms, bookings, cfg := summaryDeps(t, 5)

			redis.EXPECT().Get(gomock.Any(), "assistant:summary:front-desk:7", gomock.Any()).Return(cache.Nil)
			model.EXPECT().
				Generate(gomock.Any(), gomock.Cond(func(prompt string) bool {
					return strings.Contains(prompt, `{"name":"Room 101","status":"Ready"}`)
				})).
				Return(tt.text, tt.err)

			if tt.saved {
				redis.EXPECT().Save(gomock.Any(), "assistant:summary:front-desk:7", tt.text, 60).Return(nil)
			}

			svc := service.NewSummary(model, rooms, bookings, fixedVersion(7), redis, cfg, mocks.NewOtel())
			res := svc.Summarize(context.Background())

			assert.Equal(t, tt.want, res.Summary)
			assert.False(t, res.Cached)
			assert.False(t, res.Superseded)
		})
	}
}

func TestSummarize_ServedFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := aiMocks.NewMockModel(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)
	rooms, bookings, cfg := summaryDeps(t, 5)

	redis.EXPECT().Get(gomock.Any(), "assistant:summary:front-desk:2", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*string) = "cached summary"

			return nil
		})

	svc := service.NewSummary(model, rooms, bookings, fixedVersion(2), redis, cfg, mocks.NewOtel())
	res := svc.Summarize(context.Background())

	assert.Equal(t, "cached summary", res.Summary)
	assert.True(t, res.Cached)
}

func TestSummarize_NotCachedWhenBoardMovesDuringSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := aiMocks.NewMockModel(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)
	rooms, bookings, cfg := summaryDeps(t, 5)

	redis.EXPECT().Get(gomock.Any(), "assistant:summary:front-desk:1", gomock.Any()).Return(cache.Nil)
	model.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Two guests arrive today.", nil)

	svc := service.NewSummary(model, rooms, bookings, &movingVersion{}, redis, cfg, mocks.NewOtel())
	res := svc.Summarize(context.Background())

	assert.Equal(t, "Two guests arrive today.", res.Summary)
	assert.Equal(t, uint64(1), res.Version)
	assert.False(t, res.Cached)
}

func TestSummarize_LatestRequestWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := aiMocks.NewMockModel(ctrl)
	rooms, bookings, cfg := summaryDeps(t, 30)

	started := make(chan struct{})

	gomock.InOrder(
		model.EXPECT().Generate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ string) (string, error) {
				close(started)
				<-ctx.Done()

				return "", ctx.Err()
			}),
		model.EXPECT().Generate(gomock.Any(), gomock.Any()).Return("Fresh summary.", nil),
	)

	svc := service.NewSummary(model, rooms, bookings, fixedVersion(1), cache.NewNoopCache(), cfg, mocks.NewOtel())

	first := make(chan dto.SummaryResponse, 1)
	go func() {
		first <- svc.Summarize(context.Background())
	}()

	<-started

	second := svc.Summarize(context.Background())
	assert.Equal(t, "Fresh summary.", second.Summary)

	stale := <-first
	assert.True(t, stale.Superseded)
	assert.Equal(t, service.SummaryFailed, stale.Summary)
}

func TestSummarize_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	model := aiMocks.NewMockModel(ctrl)
	rooms, bookings, cfg := summaryDeps(t, 1)

	model.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()

			return "", ctx.Err()
		})

	svc := service.NewSummary(model, rooms, bookings, fixedVersion(1), cache.NewNoopCache(), cfg, mocks.NewOtel())
	res := svc.Summarize(context.Background())

	assert.Equal(t, service.SummaryFailed, res.Summary)
	assert.False(t, res.Superseded)
}
