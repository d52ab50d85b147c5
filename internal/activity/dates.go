package activity

import (
	"fmt"
	"strings"
	"time"
)

// KeyLayout formats the day key used to index RecordSet.
const KeyLayout = "2006-01-02"

// Day truncates t to midnight of its calendar date in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// Key returns the day key of t in its own location.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseDay parses a YYYY-MM-DD date at midnight in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(KeyLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: expected YYYY-MM-DD", value)
	}
	return day, nil
}

// Range returns every calendar day in [start, end] in ascending order. An
// inverted range yields nil.
func Range(start, end time.Time) []time.Time {
	loc := start.Location()
	first := Day(start, loc)
	last := Day(end, loc)
	if last.Before(first) {
		return nil
	}
	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Backfill returns the range covering the last n days up to and including
// today in loc.
func Backfill(now time.Time, n int, loc *time.Location) (time.Time, time.Time) {
	today := Day(now, loc)
	if n < 1 {
		n = 1
	}
	return today.AddDate(0, 0, -(n - 1)), today
}

// Months returns the distinct (year, month) pairs covered by days, in order.
func Months(days []time.Time) []time.Time {
	var months []time.Time
	seen := make(map[string]struct{})
	for _, d := range days {
		first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		key := first.Format("2006-01")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		months = append(months, first)
	}
	return months
}
