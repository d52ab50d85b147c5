package activity_test

import (
	"testing"
	"time"

	"daynote/internal/activity"
)

func TestRangeInclusive(t *testing.T) {
	start := time.Date(2025, 2, 27, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC)
	days := activity.Range(start, end)
	var keys []string
	for _, d := range days {
		keys = append(keys, activity.Key(d))
	}
	want := []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}
	if len(keys) != len(want) {
		t.Fatalf("unexpected days: %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("unexpected day %d: got %q want %q", i, keys[i], want[i])
		}
	}
	if activity.Range(end, start) != nil {
		t.Fatal("expected nil for inverted range")
	}
}

func TestRangeAcrossDSTKeepsMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	start := time.Date(2025, 3, 8, 0, 0, 0, 0, loc)
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	for _, d := range activity.Range(start, end) {
		if d.Hour() != 0 {
			t.Fatalf("expected midnight, got %v", d)
		}
	}
}

func TestDayUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	instant := time.Date(2025, 7, 17, 20, 0, 0, 0, time.UTC)
	if got := activity.Key(activity.Day(instant, loc)); got != "2025-07-18" {
		t.Fatalf("unexpected local day: %q", got)
	}
	if got := activity.Key(activity.Day(instant, nil)); got != "2025-07-17" {
		t.Fatalf("unexpected UTC day: %q", got)
	}
}

func TestParseDay(t *testing.T) {
	day, err := activity.ParseDay(" 2025-07-18 ", time.UTC)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if day.Day() != 18 || day.Hour() != 0 {
		t.Fatalf("unexpected day: %v", day)
	}
	if _, err := activity.ParseDay("18/07/2025", time.UTC); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}

func TestBackfill(t *testing.T) {
	now := time.Date(2025, 7, 18, 23, 0, 0, 0, time.UTC)
	start, end := activity.Backfill(now, 3, time.UTC)
	if activity.Key(start) != "2025-07-16" || activity.Key(end) != "2025-07-18" {
		t.Fatalf("unexpected window: %s..%s", activity.Key(start), activity.Key(end))
	}
	start, end = activity.Backfill(now, 0, time.UTC)
	if !start.Equal(end) {
		t.Fatalf("expected single-day window for n<1, got %v..%v", start, end)
	}
}

func TestMonths(t *testing.T) {
	days := activity.Range(time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	months := activity.Months(days)
	if len(months) != 3 {
		t.Fatalf("expected 3 months, got %d", len(months))
	}
	if months[0].Month() != time.January || months[2].Month() != time.March || months[1].Day() != 1 {
		t.Fatalf("unexpected months: %v", months)
	}
}
