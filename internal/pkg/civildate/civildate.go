// Package civildate reduces every date input to a canonical civil day
// ("2006-01-02") in one fixed company timezone. Attendance resolution
// compares only these canonical strings, never raw timestamps, so two
// inputs are the same day iff they format to the same string here.
package civildate

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

// Layout is the canonical civil-day form.
const Layout = "2006-01-02"

// ZoneName is the single civil timezone all attendance days are computed in.
const ZoneName = "Asia/Kolkata"

var ErrInvalidDate = errors.New("invalid date")

var location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		// Containers without tzdata still need a correct civil day.
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// Location returns the fixed civil timezone.
func Location() *time.Location {
	return location
}

// FromTime returns the civil day the instant t falls on.
func FromTime(t time.Time) string {
	return t.In(location).Format(Layout)
}

// datetime layouts accepted by Normalize, tried in order. Layouts without an
// offset are read as wall clock time already in the civil timezone.
var normalizeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalize parses any supported date or datetime string and returns its
// canonical civil day. Inputs carrying a timezone offset are converted to
// the civil timezone first.
func Normalize(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidDate)
	}
	if t, err := time.ParseInLocation(Layout, s, location); err == nil {
		return t.Format(Layout), nil
	}
	for _, layout := range normalizeLayouts {
		if t, err := time.ParseInLocation(layout, s, location); err == nil {
			return t.In(location).Format(Layout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Parse returns the midnight instant of a canonical date in the civil zone.
func Parse(date string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, date, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// Weekday returns the day of week of a canonical date (time.Sunday == 0).
func Weekday(date string) (time.Weekday, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// MonthdayOrdinal reports which occurrence of its weekday the date is within
// its month: the 1st..7th of a month is the 1st occurrence, the 8th..14th the
// 2nd, and so on. It depends only on the day of month.
func MonthdayOrdinal(date string) (int, error) {
	t, err := Parse(date)
	if err != nil {
		return 0, err
	}
	return (t.Day()-1)/7 + 1, nil
}

// Days yields every canonical date from start through end inclusive, in
// order. The sequence is empty when start sorts after end, and restartable:
// each range over it walks the full range again.
func Days(start, end string) (iter.Seq[string], error) {
	from, err := Parse(start)
	if err != nil {
		return nil, err
	}
	until, err := Parse(end)
	if err != nil {
		return nil, err
	}
	return func(yield func(string) bool) {
		for d := from; !d.After(until); d = d.AddDate(0, 0, 1) {
			if !yield(d.Format(Layout)) {
				return
			}
		}
	}, nil
}

// Range materializes Days into a slice.
func Range(start, end string) ([]string, error) {
	seq, err := Days(start, end)
	if err != nil {
		return nil, err
	}
	var dates []string
	for d := range seq {
		dates = append(dates, d)
	}
	return dates, nil
}
