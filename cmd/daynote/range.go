package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"daynote/internal/activity"
	"daynote/internal/config"
)

type rangeFlags struct {
	days int
	from string
	to   string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.days, "days", "d", 0, "Number of days up to today (default: sync.days_to_backfill)")
	cmd.Flags().StringVar(&f.from, "from", "", "First date (YYYY-MM-DD, today, or yesterday)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last date (YYYY-MM-DD, today, or yesterday; default: today)")
}

// resolve turns the flags into an inclusive date range in the configured
// timezone.
func (f rangeFlags) resolve(cfg *config.Config, now time.Time) (time.Time, time.Time, error) {
	loc := cfg.Location()
	from := strings.TrimSpace(f.from)
	to := strings.TrimSpace(f.to)

	switch {
	case f.days < 0:
		return time.Time{}, time.Time{}, errors.New("--days must be positive")
	case f.days > 0 && (from != "" || to != ""):
		return time.Time{}, time.Time{}, errors.New("use either --days or --from/--to, not both")
	case from == "" && to != "":
		return time.Time{}, time.Time{}, errors.New("--to requires --from")
	case from == "":
		days := f.days
		if days == 0 {
			days = cfg.Sync.DaysToBackfill
		}
		start, end := activity.Backfill(now, days, loc)
		return start, end, nil
	}

	start, err := parseDate(from, now, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	end := activity.Day(now, loc)
	if to != "" {
		if end, err = parseDate(to, now, loc); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", activity.Key(end), activity.Key(start))
	}
	return start, end, nil
}

// parseDate accepts YYYY-MM-DD plus the relative names today and yesterday.
func parseDate(value string, now time.Time, loc *time.Location) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "today":
		return activity.Day(now, loc), nil
	case "yesterday":
		return activity.Day(now, loc).AddDate(0, 0, -1), nil
	default:
		return activity.ParseDay(value, loc)
	}
}
