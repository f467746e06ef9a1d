package service_test

import (
	"context"
	"net/http"
	"roomboard/config"
	"roomboard/infras/otel/mocks"
	"roomboard/internal/domains/booking/model"
	"roomboard/internal/domains/booking/model/dto"
	"roomboard/internal/domains/booking/repository"
	"roomboard/internal/domains/booking/service"
	roomModel "roomboard/internal/domains/room/model"
	roomRepo "roomboard/internal/domains/room/repository"
	roomService "roomboard/internal/domains/room/service"
	staffRepo "roomboard/internal/domains/staff/repository"
	"roomboard/internal/seed"
	"roomboard/shared/constant"
	gDto "roomboard/shared/dto"
	"roomboard/shared/event"
	eventMocks "roomboard/shared/event/mocks"
	"roomboard/shared/failure"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, time.June, 2, 10, 30, 0, 0, time.UTC)

type fixture struct {
	svc       service.Booking
	bookings  repository.Booking
	rooms     roomRepo.Room
	publisher *eventMocks.MockPublisher
}

func newFixture(t *testing.T, enforce bool) fixture {
	t.Helper()

	ctx := context.Background()
	ctrl := gomock.NewController(t)
	otl := mocks.NewOtel()

	rooms := roomRepo.New(otl)
	require.NoError(t, rooms.InsertBulk(ctx, seed.Rooms()))

	members, err := seed.Staff(nil, bcrypt.MinCost)
	require.NoError(t, err)

	staff := staffRepo.New(otl)
	require.NoError(t, staff.InsertBulk(ctx, members))

	cfg := &config.Config{}
	cfg.Booking.EnforceNonOverlap = enforce

	publisher := eventMocks.NewMockPublisher(ctrl)
	publisher.EXPECT().RoomStatusChanged(gomock.Any(), gomock.Any()).AnyTimes()

	bookings := repository.New(otl)
	svc := service.NewWithClock(bookings, rooms, staff, roomService.New(rooms, publisher, otl), publisher, cfg, otl,
		func() time.Time { return fixedNow })

	return fixture{svc: svc, bookings: bookings, rooms: rooms, publisher: publisher}
}

func request(rooms []string, start, end string) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomIDs:   rooms,
		GuestName: "Ada Lovelace",
		StartDate: start,
		EndDate:   end,
		StaffID:   "s1",
		Notes:     "late arrival",
	}
}

func TestCreate_MultiRoom(t *testing.T) {
	f := newFixture(t, true)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	res, err := f.svc.Create(context.Background(), request([]string{"104", "105"}, "2024-07-01", "2024-07-04"))
	require.NoError(t, err)
	require.Len(t, res.Bookings, 2)

	a, b := res.Bookings[0], res.Bookings[1]
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "104", a.RoomID)
	assert.Equal(t, "105", b.RoomID)

	for _, booking := range res.Bookings {
		assert.Equal(t, "Ada Lovelace", booking.GuestName)
		assert.Equal(t, "2024-07-01", booking.StartDate)
		assert.Equal(t, "2024-07-04", booking.EndDate)
		assert.Equal(t, 3, booking.StayNights)
		assert.Equal(t, "s1", booking.StaffID)
		assert.Equal(t, "late arrival", booking.Notes)
		assert.Equal(t, fixedNow.Format(constant.DateFormat), booking.CreatedAt)
	}

	stored := f.bookings.Find(context.Background(), nil)
	require.Len(t, stored, 2)
	assert.True(t, stored[0].CreatedAt.Equal(stored[1].CreatedAt))
}

func TestCreate_RejectedInputLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*dto.CreateBookingRequest)
		wantCode int
		wantErr  error
	}{
		{
			name:     "no rooms",
			mutate:   func(r *dto.CreateBookingRequest) { r.RoomIDs = []string{} },
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrInvalidBooking,
		},
		{
			name:     "empty guest",
			mutate:   func(r *dto.CreateBookingRequest) { r.GuestName = "" },
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrInvalidBooking,
		},
		{
			name:     "blank guest",
			mutate:   func(r *dto.CreateBookingRequest) { r.GuestName = "   " },
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrInvalidBooking,
		},
		{
			name:     "end equals start",
			mutate:   func(r *dto.CreateBookingRequest) { r.EndDate = r.StartDate },
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrInvalidBooking,
		},
		{
			name:     "end before start",
			mutate:   func(r *dto.CreateBookingRequest) { r.EndDate = "2024-06-30" },
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrInvalidBooking,
		},
		{
			name:     "malformed date",
			mutate:   func(r *dto.CreateBookingRequest) { r.StartDate = "07/01/2024" },
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrInvalidBooking,
		},
		{
			name:     "duplicate rooms",
			mutate:   func(r *dto.CreateBookingRequest) { r.RoomIDs = []string{"101", "101"} },
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrInvalidBooking,
		},
		{
			name:     "no staff and no session",
			mutate:   func(r *dto.CreateBookingRequest) { r.StaffID = "" },
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrInvalidBooking,
		},
		{
			name:     "unknown room",
			mutate:   func(r *dto.CreateBookingRequest) { r.RoomIDs = []string{"101", "999"} },
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  model.ErrUnknownReference,
		},
		{
			name:     "unknown staff",
			mutate:   func(r *dto.CreateBookingRequest) { r.StaffID = "s9" },
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  model.ErrUnknownReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)

			req := request([]string{"101"}, "2024-07-01", "2024-07-04")
			tt.mutate(&req)

			_, err := f.svc.Create(context.Background(), req)

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.bookings.Count(context.Background(), nil))
		})
	}
}

func TestCreate_OverlapIsAConflict(t *testing.T) {
	f := newFixture(t, true)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any()).Times(1)

	ctx := context.Background()

	_, err := f.svc.Create(ctx, request([]string{"101"}, "2024-06-11", "2024-06-13"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, request([]string{"101"}, "2024-06-10", "2024-06-12"))
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.ErrorIs(t, err, model.ErrOverlap)

	_, err = f.svc.Create(ctx, request([]string{"101"}, "2024-06-13", "2024-06-15"))
	assert.ErrorIs(t, err, model.ErrOverlap, "stays are inclusive, so a shared boundary day conflicts")

	assert.Equal(t, 1, f.bookings.Count(ctx, nil))
}

func TestCreate_ConflictInOneRoomBooksNoRoom(t *testing.T) {
	f := newFixture(t, true)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any()).Times(1)

	ctx := context.Background()

	_, err := f.svc.Create(ctx, request([]string{"102"}, "2024-06-11", "2024-06-13"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, request([]string{"101", "102"}, "2024-06-10", "2024-06-12"))
	require.ErrorIs(t, err, model.ErrOverlap)

	assert.Zero(t, f.bookings.Count(ctx, func(b model.Booking) bool { return b.RoomID == "101" }))
}

func TestCreate_OverlapAllowedWhenNotEnforced(t *testing.T) {
	f := newFixture(t, false)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any()).Times(2)

	ctx := context.Background()

	_, err := f.svc.Create(ctx, request([]string{"101"}, "2024-06-11", "2024-06-13"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, request([]string{"101"}, "2024-06-10", "2024-06-12"))
	require.NoError(t, err)

	assert.Equal(t, 2, f.bookings.Count(ctx, nil))
}

func TestCreate_StayCoveringTodayMarksRoomOccupied(t *testing.T) {
	f := newFixture(t, true)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any()).Times(2)

	ctx := context.Background()

	_, _, err := f.rooms.UpdateStatus(ctx, "201", roomModel.StatusOutOfOrder)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, request([]string{"201"}, "2024-06-01", "2024-06-04"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, request([]string{"202"}, "2024-06-03", "2024-06-05"))
	require.NoError(t, err)

	covering, err := f.rooms.Get(ctx, "201")
	require.NoError(t, err)
	assert.Equal(t, roomModel.StatusOccupied, covering.Status, "Out of Order is overwritten")

	future, err := f.rooms.Get(ctx, "202")
	require.NoError(t, err)
	assert.Equal(t, roomModel.StatusReady, future.Status)
}

func TestCreate_EmitsOneEventPerBooking(t *testing.T) {
	f := newFixture(t, true)

	inRoom := func(roomID string) gomock.Matcher {
		return gomock.Cond(func(e event.BookingCreated) bool {
			return e.RoomID == roomID && e.StartDate == "2024-08-01" && e.EndDate == "2024-08-02"
		})
	}

	f.publisher.EXPECT().BookingsCreated(gomock.Any(), inRoom("203"), inRoom("204")).Times(1)

	_, err := f.svc.Create(context.Background(), request([]string{"203", "204"}, "2024-08-01", "2024-08-02"))
	require.NoError(t, err)
}

func TestCreate_DefaultsToSessionStaff(t *testing.T) {
	f := newFixture(t, true)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any()).Times(1)

	ctx := context.WithValue(context.Background(), constant.ContextKeyStaffID, "s3")

	req := request([]string{"301"}, "2024-07-01", "2024-07-02")
	req.StaffID = ""

	res, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "s3", res.Bookings[0].StaffID)
}

func TestCreate_ConcurrentRequestsAdmitOne(t *testing.T) {
	f := newFixture(t, true)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any()).Times(1)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := f.svc.Create(context.Background(), request([]string{"105"}, "2024-09-01", "2024-09-03"))
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, f.bookings.Count(context.Background(), nil))
}

func TestCountsByStaff(t *testing.T) {
	f := newFixture(t, false)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any()).AnyTimes()
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	ctx := context.Background()

	_, err := f.svc.Create(ctx, request([]string{"101", "102"}, "2024-07-01", "2024-07-02"))
	require.NoError(t, err)

	req := request([]string{"103"}, "2024-07-01", "2024-07-02")
	req.StaffID = "s4"
	_, err = f.svc.Create(ctx, req)
	require.NoError(t, err)

	require.NoError(t, f.bookings.InsertBulk(ctx, []model.Booking{{ID: "orphan", RoomID: "104", StaffID: "ghost"}}))

	counts, err := f.svc.CountsByStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"s1": 2, "s2": 0, "s3": 0, "s4": 1, "s5": 0}, counts)

	again, err := f.svc.CountsByStaff(ctx)
	require.NoError(t, err)
	assert.Equal(t, counts, again)
}

func TestGetAll(t *testing.T) {
	f := newFixture(t, true)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any()).AnyTimes()

	ctx := context.Background()
	for _, r := range []struct{ room, start, end string }{
		{"101", "2024-07-10", "2024-07-12"},
		{"102", "2024-07-01", "2024-07-03"},
		{"103", "2024-07-05", "2024-07-06"},
	} {
		_, err := f.svc.Create(ctx, request([]string{r.room}, r.start, r.end))
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		params    gDto.QueryParams
		filter    dto.BookingFilter
		wantRooms []string
		wantTotal int
		wantPages int
		wantCode  int
	}{
		{
			name:      "newest first",
			params:    gDto.QueryParams{Page: 1, Limit: 2},
			wantRooms: []string{"103", "102"},
			wantTotal: 3,
			wantPages: 2,
		},
		{
			name:      "by start date ascending",
			params:    gDto.QueryParams{Page: 1, Limit: 10, SortBy: dto.SortByStartDate, SortDir: gDto.SortDirAsc},
			wantRooms: []string{"102", "103", "101"},
			wantTotal: 3,
			wantPages: 1,
		},
		{
			name:      "covering a day",
			params:    gDto.QueryParams{Page: 1, Limit: 10},
			filter:    dto.BookingFilter{Date: "2024-07-03"},
			wantRooms: []string{"102"},
			wantTotal: 1,
			wantPages: 1,
		},
		{
			name:      "by room",
			params:    gDto.QueryParams{Page: 1, Limit: 10},
			filter:    dto.BookingFilter{RoomID: "101"},
			wantRooms: []string{"101"},
			wantTotal: 1,
			wantPages: 1,
		},
		{
			name:     "bad date filter",
			params:   gDto.QueryParams{Page: 1, Limit: 10},
			filter:   dto.BookingFilter{Date: "tomorrow"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown sort",
			params:   gDto.QueryParams{Page: 1, Limit: 10, SortBy: "price"},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.svc.GetAll(ctx, tt.params, tt.filter)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)

			rooms := make([]string, 0, len(res.Bookings))
			for _, b := range res.Bookings {
				rooms = append(rooms, b.RoomID)
			}

			assert.Equal(t, tt.wantRooms, rooms)
			assert.Equal(t, tt.wantTotal, res.TotalData)
			assert.Equal(t, tt.wantPages, res.TotalPage)
		})
	}
}

func TestGet(t *testing.T) {
	f := newFixture(t, true)
	f.publisher.EXPECT().BookingsCreated(gomock.Any(), gomock.Any()).Times(1)

	ctx := context.Background()

	created, err := f.svc.Create(ctx, request([]string{"206"}, "2024-07-01", "2024-07-02"))
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.Bookings[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created.Bookings[0], got)

	_, err = f.svc.Get(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
