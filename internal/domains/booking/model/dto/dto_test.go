package dto_test

import (
	"net/http/httptest"
	"roomboard/internal/domains/booking/model"
	"roomboard/internal/domains/booking/model/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_ToModels(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomIDs:   []string{"101", "102", "103"},
		GuestName: "  Grace Hopper ",
		StartDate: "2024-06-01",
		EndDate:   "2024-06-04",
		Notes:     "cot",
	}

	start, end, err := req.Stay(time.UTC)
	require.NoError(t, err)

	createdAt := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	bookings := req.ToModels("s2", start, end, createdAt)

	require.Len(t, bookings, 3)

	ids := map[string]struct{}{}
	for i, b := range bookings {
		ids[b.ID] = struct{}{}

		assert.Equal(t, req.RoomIDs[i], b.RoomID)
		assert.Equal(t, "Grace Hopper", b.GuestName)
		assert.Equal(t, start, b.StartDate)
		assert.Equal(t, end, b.EndDate)
		assert.Equal(t, "s2", b.StaffID)
		assert.Equal(t, "cot", b.Notes)
		assert.Equal(t, createdAt, b.CreatedAt)
	}

	assert.Len(t, ids, 3)
}

func TestCreateBookingRequest_Stay(t *testing.T) {
	req := dto.CreateBookingRequest{StartDate: "2024-06-01", EndDate: "June 4"}

	_, _, err := req.Stay(time.UTC)
	assert.Error(t, err)
}

func TestBookingFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/bookings?room_id=101&staff_id=s1&date=2024-06-03", nil)

	var filter dto.BookingFilter
	filter.FromRequest(r)

	assert.Equal(t, dto.BookingFilter{RoomID: "101", StaffID: "s1", Date: "2024-06-03"}, filter)

	match := filter.Match(time.UTC)
	stay := model.Booking{
		RoomID:    "101",
		StaffID:   "s1",
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, match(stay))

	other := stay
	other.RoomID = "102"
	assert.False(t, match(other))

	other = stay
	other.StaffID = "s2"
	assert.False(t, match(other))

	other = stay
	other.EndDate = time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	assert.False(t, match(other))

	empty := dto.BookingFilter{}
	assert.True(t, empty.Match(time.UTC)(other))
}

func TestBookingResponse_FromModel(t *testing.T) {
	var res dto.BookingResponse
	res.FromModel(model.Booking{
		ID:        "b1",
		RoomID:    "101",
		GuestName: "Grace Hopper",
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC),
		StaffID:   "s1",
		CreatedAt: time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "2024-06-01", res.StartDate)
	assert.Equal(t, "2024-06-04", res.EndDate)
	assert.Equal(t, 3, res.StayNights)
	assert.Equal(t, "2024-05-20T09:00:00Z", res.CreatedAt)
}
