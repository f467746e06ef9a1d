// Package calendar holds the date-only arithmetic behind the booking board.
//
// Every function works on calendar dates: the time-of-day of its arguments is
// ignored and results are normalised to midnight in the argument's location.
package calendar

import (
	"math"
	"time"
)

const (
	dateLayout = "2006-01-02"
	day        = 24 * time.Hour
)

// DateOf returns t truncated to midnight in t's location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns every date of the month in ascending order, each at midnight in loc.
func DaysInMonth(year int, month time.Month, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.UTC
	}

	days := make([]time.Time, 0, 31)
	for date := time.Date(year, month, 1, 0, 0, 0, 0, loc); date.Month() == month; date = date.AddDate(0, 0, 1) {
		days = append(days, date)
	}

	return days
}

// IsSameDay reports whether a and b fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// IsDateInRange reports whether the calendar date of day lies within [start, end], both inclusive.
func IsDateInRange(day, start, end time.Time) bool {
	d := DayNumber(day)

	return d >= DayNumber(start) && d <= DayNumber(end)
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and [bStart, bEnd] share a day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return DayNumber(aStart) <= DayNumber(bEnd) && DayNumber(bStart) <= DayNumber(aEnd)
}

// Nights returns ceil((end - start) / 1 day) on calendar dates.
func Nights(start, end time.Time) int {
	diff := ordinalTime(end).Sub(ordinalTime(start))

	return int(math.Ceil(float64(diff) / float64(day)))
}

// AddNights returns the calendar date n days after start.
func AddNights(start time.Time, n int) time.Time {
	return DateOf(start).AddDate(0, 0, n)
}

// IsWeekend reports whether t is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()

	return wd == time.Saturday || wd == time.Sunday
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	return time.ParseInLocation(dateLayout, value, loc) //nolint:wrapcheck
}

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ordinalTime maps the calendar date of t onto UTC midnight, so differences are whole days even across DST changes.
func ordinalTime(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayNumber counts the days from 1970-01-01 to the calendar date of t. Two times compare by
// DayNumber exactly as their calendar dates do, whatever their locations.
func DayNumber(t time.Time) int64 {
	return ordinalTime(t).Unix() / int64(day/time.Second)
}
