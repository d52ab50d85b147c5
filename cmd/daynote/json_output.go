package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"daynote/internal/activity"
	"daynote/internal/history"
	"daynote/internal/workflow"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type reportDayJSON struct {
	Date    string `json:"date"`
	Outcome string `json:"outcome"`
	Commits int    `json:"commits"`
	Error   string `json:"error,omitempty"`
}

// reportJSON is the machine-readable form of a run report. Unchanged dates
// are included so callers see every date in the range.
type reportJSON struct {
	RunID          string          `json:"run_id"`
	Kind           history.Kind    `json:"kind"`
	RangeStart     string          `json:"range_start"`
	RangeEnd       string          `json:"range_end"`
	DryRun         bool            `json:"dry_run"`
	Status         history.Status  `json:"status"`
	Counts         history.Counts  `json:"counts"`
	Commits        int             `json:"commits"`
	MonthsCreated  int             `json:"months_created,omitempty"`
	MonthsStripped int             `json:"months_stripped,omitempty"`
	DurationMS     int64           `json:"duration_ms"`
	Days           []reportDayJSON `json:"days"`
}

func newReportJSON(report workflow.Report) reportJSON {
	days := make([]reportDayJSON, 0, len(report.Days))
	for _, day := range report.Days {
		entry := reportDayJSON{
			Date:    activity.Key(day.Date),
			Outcome: string(day.Outcome),
			Commits: day.Commits,
		}
		if day.Err != nil {
			entry.Error = day.Err.Error()
		}
		days = append(days, entry)
	}
	return reportJSON{
		RunID:          report.RunID,
		Kind:           report.Kind,
		RangeStart:     activity.Key(report.Start),
		RangeEnd:       activity.Key(report.End),
		DryRun:         report.DryRun,
		Status:         report.Status(),
		Counts:         report.Counts,
		Commits:        report.Commits,
		MonthsCreated:  report.MonthsCreated,
		MonthsStripped: report.MonthsStripped,
		DurationMS:     report.Duration.Milliseconds(),
		Days:           days,
	}
}
