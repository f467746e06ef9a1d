package dto

import (
	"net/http"
	"roomboard/internal/domains/booking/model"
	"roomboard/shared"
	"roomboard/shared/calendar"
	"roomboard/shared/constant"
	gRepo "roomboard/shared/repository"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SortByCreatedAt = "created_at"
	SortByStartDate = "start_date"
)

// CreateBookingRequest books the same stay in every listed room. An empty StaffID
// falls back to the staff member of the current session.
type CreateBookingRequest struct {
	RoomIDs   []string `json:"room_ids"   validate:"required,min=1,unique,dive,required"`
	GuestName string   `json:"guest_name" validate:"required,notblank,max=100"`
	StartDate string   `json:"start_date" validate:"required,date"`
	EndDate   string   `json:"end_date"   validate:"required,date"`
	StaffID   string   `json:"staff_id"   validate:"omitempty"`
	Notes     string   `json:"notes"      validate:"omitempty,max=500"`
}

// Stay parses the requested dates as calendar days in loc.
func (c *CreateBookingRequest) Stay(loc *time.Location) (start, end time.Time, err error) {
	start, err = calendar.ParseDate(c.StartDate, loc)
	if err != nil {
		return start, end, err //nolint:wrapcheck
	}

	end, err = calendar.ParseDate(c.EndDate, loc)

	return start, end, err //nolint:wrapcheck
}

// ToModels builds one booking per room. All of them share createdAt and everything
// except their id and room.
func (c *CreateBookingRequest) ToModels(staffID string, start, end, createdAt time.Time) []model.Booking {
	bookings := make([]model.Booking, len(c.RoomIDs))
	for i, roomID := range c.RoomIDs {
		bookings[i] = model.Booking{
			ID:        uuid.NewString(),
			RoomID:    roomID,
			GuestName: strings.TrimSpace(c.GuestName),
			StartDate: start,
			EndDate:   end,
			StaffID:   staffID,
			Notes:     c.Notes,
			CreatedAt: createdAt,
		}
	}

	return bookings
}

type BookingFilter struct {
	RoomID  string `json:"room_id"  validate:"omitempty"`
	StaffID string `json:"staff_id" validate:"omitempty"`
	Date    string `json:"date"     validate:"omitempty,date"`
}

func (f *BookingFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.RoomID = query.Get("room_id")
	f.StaffID = query.Get("staff_id")
	f.Date = query.Get(constant.RequestParamDate)
}

// Match turns the filter into a repository predicate. Date must already be validated.
func (f *BookingFilter) Match(loc *time.Location) gRepo.Filter[model.Booking] {
	var day *time.Time

	if f.Date != constant.Empty {
		if d, err := calendar.ParseDate(f.Date, loc); err == nil {
			day = &d
		}
	}

	return func(b model.Booking) bool {
		if f.RoomID != constant.Empty && b.RoomID != f.RoomID {
			return false
		}

		if f.StaffID != constant.Empty && b.StaffID != f.StaffID {
			return false
		}

		return day == nil || b.Covers(*day)
	}
}

type BookingResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	GuestName  string `json:"guest_name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	StayNights int    `json:"stay_nights"`
	StaffID    string `json:"staff_id"`
	Notes      string `json:"notes"`
	CreatedAt  string `json:"created_at"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.GuestName = model.GuestName
	r.StartDate = calendar.FormatDate(model.StartDate)
	r.EndDate = calendar.FormatDate(model.EndDate)
	r.StayNights = model.Nights()
	r.StaffID = model.StaffID
	r.Notes = model.Notes
	r.CreatedAt = model.CreatedAt.Format(constant.DateFormat)
}

type CreateBookingResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

func (r *CreateBookingResponse) FromModels(models []model.Booking) {
	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
