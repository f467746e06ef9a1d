package service_test

import (
	"context"
	"net/http"
	"roomboard/infras/otel/mocks"
	"roomboard/internal/domains/room/model"
	"roomboard/internal/domains/room/repository"
	"roomboard/internal/domains/room/service"
	"roomboard/internal/seed"
	"roomboard/shared/event"
	eventMocks "roomboard/shared/event/mocks"
	"roomboard/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T, ctrl *gomock.Controller) (service.Room, *eventMocks.MockPublisher) {
	t.Helper()

	repo := repository.New(mocks.NewOtel())
	require.NoError(t, repo.InsertBulk(context.Background(), seed.Rooms()))

	publisher := eventMocks.NewMockPublisher(ctrl)

	return service.New(repo, publisher, mocks.NewOtel()), publisher
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newService(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name      string
		roomType  string
		wantCount int
		wantFirst string
		wantCode  int
	}{
		{name: "all rooms", roomType: "", wantCount: 13, wantFirst: "101"},
		{name: "twin rooms keep canonical order", roomType: "Twin Room", wantCount: 6, wantFirst: "101"},
		{name: "double rooms keep canonical order", roomType: "Double Bed", wantCount: 7, wantFirst: "104"},
		{name: "unknown type", roomType: "Suite", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.List(ctx, tt.roomType)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, res.TotalData)
			assert.Equal(t, tt.wantFirst, res.Rooms[0].ID)
		})
	}
}

func TestList_IsStableFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newService(t, ctrl)
	ctx := context.Background()

	all, err := svc.List(ctx, "")
	require.NoError(t, err)

	doubles, err := svc.List(ctx, string(model.TypeDouble))
	require.NoError(t, err)

	expected := []string{}
	for _, r := range all.Rooms {
		if r.Type == string(model.TypeDouble) {
			expected = append(expected, r.ID)
		}
	}

	got := []string{}
	for _, r := range doubles.Rooms {
		got = append(got, r.ID)
	}

	assert.Equal(t, expected, got)
}

func TestCycleStatus_FourStepsReturnToReady(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, publisher := newService(t, ctrl)
	ctx := context.Background()

	publisher.EXPECT().RoomStatusChanged(gomock.Any(), gomock.Any()).Times(4)

	want := []model.Status{model.StatusOccupied, model.StatusCleaning, model.StatusOutOfOrder, model.StatusReady}
	for _, status := range want {
		res, err := svc.CycleStatus(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, string(status), res.Status)
	}
}

func TestCycleStatus_UnknownRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newService(t, ctrl)

	_, err := svc.CycleStatus(context.Background(), "404")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestSetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, publisher := newService(t, ctrl)
	ctx := context.Background()

	publisher.EXPECT().RoomStatusChanged(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e event.RoomStatusChanged) {
			assert.Equal(t, "202", e.RoomID)
			assert.Equal(t, "Ready", e.From)
			assert.Equal(t, "Out of Order", e.To)
			assert.Equal(t, event.ReasonManualSet, e.Reason)
		})

	res, err := svc.SetStatus(ctx, "202", model.StatusOutOfOrder, "")
	require.NoError(t, err)
	assert.Equal(t, "Out of Order", res.Status)

	_, err = svc.SetStatus(ctx, "202", model.Status("Vacant"), "")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = svc.SetStatus(ctx, "404", model.StatusReady, "")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
