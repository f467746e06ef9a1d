package dto

import (
	"net/http"
	"roomboard/internal/domains/board/resolver"
	roomDto "roomboard/internal/domains/room/model/dto"
	staffDto "roomboard/internal/domains/staff/model/dto"
	"roomboard/shared"
	"roomboard/shared/calendar"
	"roomboard/shared/constant"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// MonthRequest selects a calendar month. Month is 1-based.
type MonthRequest struct {
	Year  int `json:"year"  validate:"required,min=1,max=9999"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

// FromRequest reads {year} and {month} from the route. Non-numeric values are left at zero
// and fail validation.
func (m *MonthRequest) FromRequest(r *http.Request) {
	if year := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamYear)); year != nil {
		m.Year = *year
	}

	if month := shared.ConvertStringToInt(chi.URLParam(r, constant.RequestParamMonth)); month != nil {
		m.Month = *month
	}
}

func (m MonthRequest) Key() string {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC).Format(constant.MonthFormat)
}

type CellRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	Date   string `json:"date"    validate:"required,date"`
}

type DayResponse struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	IsToday   bool   `json:"is_today"`
	IsWeekend bool   `json:"is_weekend"`
	Occupied  int    `json:"occupied"`
}

func (d *DayResponse) FromDate(day, today time.Time) {
	d.Date = calendar.FormatDate(day)
	d.Label = day.Format(constant.DayLabelFmt)
	d.IsToday = calendar.IsSameDay(day, today)
	d.IsWeekend = calendar.IsWeekend(day)
}

// CellBooking is the part of a booking drawn in a board cell.
type CellBooking struct {
	ID         string   `json:"id"`
	GuestName  string   `json:"guest_name"`
	GuestLabel string   `json:"guest_label"`
	StaffID    string   `json:"staff_id"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	IsStart    bool     `json:"is_start"`
	StayNights int      `json:"stay_nights"`
	Conflicts  []string `json:"conflicts,omitempty"`
}

type CellResponse struct {
	RoomID  string       `json:"room_id"`
	Date    string       `json:"date"`
	Booking *CellBooking `json:"booking"`
}

func (c *CellResponse) FromCell(roomID string, day time.Time, cell resolver.Cell, found bool) {
	c.RoomID = roomID
	c.Date = calendar.FormatDate(day)
	c.Booking = nil

	if !found {
		return
	}

	c.Booking = &CellBooking{
		ID:         cell.Booking.ID,
		GuestName:  cell.Booking.GuestName,
		GuestLabel: FirstName(cell.Booking.GuestName),
		StaffID:    cell.Booking.StaffID,
		StartDate:  calendar.FormatDate(cell.Booking.StartDate),
		EndDate:    calendar.FormatDate(cell.Booking.EndDate),
		IsStart:    cell.IsStart,
		StayNights: cell.StayNights,
		Conflicts:  cell.Conflicts,
	}
}

// FirstName is the short label drawn on the first day of a stay.
func FirstName(guestName string) string {
	fields := strings.Fields(guestName)
	if len(fields) == 0 {
		return constant.Empty
	}

	return fields[0]
}

type RowResponse struct {
	Room  roomDto.RoomResponse `json:"room"`
	Cells []CellResponse       `json:"cells"`
}

type SectionResponse struct {
	Type string        `json:"type"`
	Rows []RowResponse `json:"rows"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MonthResponse struct {
	Year          int                      `json:"year"`
	Month         int                      `json:"month"`
	Label         string                   `json:"label"`
	Version       uint64                   `json:"version"`
	Days          []DayResponse            `json:"days"`
	Sections      []SectionResponse        `json:"sections"`
	Legend        []StatusCount            `json:"legend"`
	Staff         []staffDto.StaffResponse `json:"staff"`
	TotalBookings int                      `json:"total_bookings"`
}

type ExportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
