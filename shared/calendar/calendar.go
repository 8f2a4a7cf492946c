// Package calendar works with whole calendar days.
//
// A day is identified by the year, month and day of a time in its own location. Values returned
// by this package are midnight UTC of that day so they compare, hash and format identically no
// matter which timezone the process runs in.
package calendar

import (
	"errors"
	"iter"
	"time"

	"hotel/shared/constant"
)

var ErrInvalidDate = errors.New("invalid date")

var layouts = []string{
	constant.CalendarFormat,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func Day(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func Key(t time.Time) string {
	return Day(t).Format(constant.CalendarFormat)
}

// Parse accepts a date key, an RFC3339 instant or a "YYYY-MM-DD HH:MM:SS" timestamp and returns the
// calendar day written in the input. An offset in the input never moves the day.
func Parse(value string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Day(t), nil
		}
	}

	return time.Time{}, ErrInvalidDate
}

// Nights yields every day in [start, end). The end day is never produced.
func Nights(start, end time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		last := Day(end)

		for day := Day(start); day.Before(last); day = day.AddDate(0, 0, 1) {
			if !yield(day) {
				return
			}
		}
	}
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return Day(aStart).Before(Day(bEnd)) && Day(aEnd).After(Day(bStart))
}
