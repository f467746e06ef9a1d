// Package resolver answers which booking, if any, occupies a room on a given day.
//
// Bookings are expected not to overlap within a room. When they do, the earliest booking in
// insertion order wins and the others are reported as conflicts.
package resolver

import (
	"roomboard/internal/domains/booking/model"
	"roomboard/shared/calendar"
	"slices"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// Cell is the booking shown in one room on one day.
type Cell struct {
	Booking    model.Booking
	IsStart    bool
	StayNights int
	// ids of further bookings that also cover the day, in insertion order
	Conflicts []string
}

func newCell(booking model.Booking, day time.Time) Cell {
	return Cell{
		Booking:    booking,
		IsStart:    calendar.IsSameDay(day, booking.StartDate),
		StayNights: booking.Nights(),
	}
}

// Resolve scans bookings in order and returns the first one for roomID whose stay contains day.
func Resolve(roomID string, day time.Time, bookings []model.Booking) (Cell, bool) {
	var (
		cell  Cell
		found bool
	)

	for _, booking := range bookings {
		if booking.RoomID != roomID || !booking.Covers(day) {
			continue
		}

		if !found {
			cell = newCell(booking, day)
			found = true

			continue
		}

		cell.Conflicts = append(cell.Conflicts, booking.ID)
	}

	if len(cell.Conflicts) > 0 {
		reportConflict(roomID, day, cell)
	}

	return cell, found
}

func reportConflict(roomID string, day time.Time, cell Cell) {
	log.Warn().
		Str("room_id", roomID).
		Str("date", calendar.FormatDate(day)).
		Str("booking_id", cell.Booking.ID).
		Strs("conflicts", cell.Conflicts).
		Msg("overlapping bookings for room")
}

type entry struct {
	booking model.Booking
	seq     int
	start   int64
	end     int64
}

type roomIndex struct {
	// sorted by start
	entries []entry
	// maxEnd[i] is the largest end among entries[:i+1]
	maxEnd []int64
}

// Index is a read-only snapshot of bookings grouped by room. It resolves a cell in
// O(log n + k) where k is the number of bookings starting on or before the day whose
// stay may still be running.
type Index struct {
	rooms map[string]*roomIndex
}

// NewIndex builds an index over bookings. Later changes to the slice are not seen.
func NewIndex(bookings []model.Booking) *Index {
	idx := &Index{rooms: map[string]*roomIndex{}}

	for seq, booking := range bookings {
		room, ok := idx.rooms[booking.RoomID]
		if !ok {
			room = &roomIndex{}
			idx.rooms[booking.RoomID] = room
		}

		room.entries = append(room.entries, entry{
			booking: booking,
			seq:     seq,
			start:   calendar.DayNumber(booking.StartDate),
			end:     calendar.DayNumber(booking.EndDate),
		})
	}

	for _, room := range idx.rooms {
		slices.SortStableFunc(room.entries, func(a, b entry) int {
			switch {
			case a.start < b.start:
				return -1
			case a.start > b.start:
				return 1
			default:
				return 0
			}
		})

		room.maxEnd = make([]int64, len(room.entries))
		for i, e := range room.entries {
			room.maxEnd[i] = e.end
			if i > 0 && room.maxEnd[i-1] > e.end {
				room.maxEnd[i] = room.maxEnd[i-1]
			}
		}
	}

	return idx
}

// Resolve returns the same cell as the package level Resolve over the bookings the index
// was built from.
func (idx *Index) Resolve(roomID string, day time.Time) (Cell, bool) {
	room, ok := idx.rooms[roomID]
	if !ok {
		return Cell{}, false
	}

	d := calendar.DayNumber(day)

	// entries[:n] start on or before d
	n := sort.Search(len(room.entries), func(i int) bool { return room.entries[i].start > d })

	var matches []entry

	for i := n - 1; i >= 0 && room.maxEnd[i] >= d; i-- {
		if room.entries[i].end >= d {
			matches = append(matches, room.entries[i])
		}
	}

	if len(matches) == 0 {
		return Cell{}, false
	}

	slices.SortFunc(matches, func(a, b entry) int { return a.seq - b.seq })

	cell := newCell(matches[0].booking, day)
	for _, m := range matches[1:] {
		cell.Conflicts = append(cell.Conflicts, m.booking.ID)
	}

	if len(cell.Conflicts) > 0 {
		reportConflict(roomID, day, cell)
	}

	return cell, true
}
