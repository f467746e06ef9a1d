package model

import (
	"errors"
	"roomboard/shared/calendar"
	"time"
)

const (
	EntityName = "booking"
)

var (
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidBooking marks a malformed booking request.
	ErrInvalidBooking = errors.New("invalid booking")
	// ErrUnknownReference marks a request naming a room or staff member that does not exist.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrOverlap marks a stay that would share a day with an existing booking of the same room.
	ErrOverlap = errors.New("booking overlaps an existing stay")
)

// Booking holds one room for the inclusive stay [StartDate, EndDate]. Bookings are never
// modified after creation.
type Booking struct {
	ID        string
	RoomID    string
	GuestName string
	StartDate time.Time
	EndDate   time.Time
	StaffID   string
	Notes     string
	CreatedAt time.Time
}

// Nights is the stay length, at least 1 for a valid booking.
func (b Booking) Nights() int {
	return calendar.Nights(b.StartDate, b.EndDate)
}

// Covers reports whether day falls inside the stay.
func (b Booking) Covers(day time.Time) bool {
	return calendar.IsDateInRange(day, b.StartDate, b.EndDate)
}

// Overlaps reports whether the stay shares at least one day with [start, end].
func (b Booking) Overlaps(start, end time.Time) bool {
	return calendar.Overlaps(b.StartDate, b.EndDate, start, end)
}
