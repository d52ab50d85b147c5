package main

import (
	"strings"
	"testing"
	"time"

	"daynote/internal/activity"
	"daynote/internal/config"
)

func TestRangeFlagsResolve(t *testing.T) {
	cfg := config.Default()
	cfg.Sync.DaysToBackfill = 3
	now := time.Date(2025, time.July, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		flags     rangeFlags
		wantStart string
		wantEnd   string
		wantErr   string
	}{
		{name: "default backfill", flags: rangeFlags{}, wantStart: "2025-07-08", wantEnd: "2025-07-10"},
		{name: "explicit days", flags: rangeFlags{days: 1}, wantStart: "2025-07-10", wantEnd: "2025-07-10"},
		{name: "from only", flags: rangeFlags{from: "2025-07-01"}, wantStart: "2025-07-01", wantEnd: "2025-07-10"},
		{name: "from and to", flags: rangeFlags{from: "2025-06-30", to: "2025-07-02"}, wantStart: "2025-06-30", wantEnd: "2025-07-02"},
		{name: "relative names", flags: rangeFlags{from: "yesterday", to: "Today"}, wantStart: "2025-07-09", wantEnd: "2025-07-10"},
		{name: "negative days", flags: rangeFlags{days: -2}, wantErr: "positive"},
		{name: "days with from", flags: rangeFlags{days: 2, from: "2025-07-01"}, wantErr: "not both"},
		{name: "to without from", flags: rangeFlags{to: "2025-07-01"}, wantErr: "requires --from"},
		{name: "inverted", flags: rangeFlags{from: "2025-07-05", to: "2025-07-01"}, wantErr: "before"},
		{name: "bad date", flags: rangeFlags{from: "07/01/2025"}, wantErr: "--from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.flags.resolve(&cfg, now)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got := activity.Key(start); got != tt.wantStart {
				t.Fatalf("unexpected start: got %q want %q", got, tt.wantStart)
			}
			if got := activity.Key(end); got != tt.wantEnd {
				t.Fatalf("unexpected end: got %q want %q", got, tt.wantEnd)
			}
		})
	}
}
