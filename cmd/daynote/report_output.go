package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"daynote/internal/activity"
	"daynote/internal/history"
	"daynote/internal/workflow"
)

// printReport writes the one-line run summary followed by a table of the
// dates that did something other than stay unchanged.
func printReport(out io.Writer, report workflow.Report) {
	colorize := shouldColorize(out)
	prefix := ""
	if report.DryRun {
		prefix = "[dry-run] "
	}
	c := report.Counts
	fmt.Fprintf(out, "%s%s %s: %d created, %d updated, %d retracted, %d unchanged, %d skipped, %d failed\n",
		prefix,
		report.Kind,
		rangeText(report),
		c.Created, c.Updated, c.Retracted, c.Unchanged, c.Skipped, c.Failed,
	)
	if report.Kind == history.KindSync {
		fmt.Fprintf(out, "%s across %s\n",
			plural(report.Commits, "commit", "commits"),
			plural(c.Total(), "day", "days"),
		)
	}
	if report.Kind == history.KindCalendar {
		fmt.Fprintf(out, "Month notes: %d created, %d quick links stripped\n", report.MonthsCreated, report.MonthsStripped)
	}

	rows := make([][]string, 0, len(report.Days))
	for _, day := range report.Days {
		if day.Outcome == workflow.OutcomeUnchanged {
			continue
		}
		detail := ""
		if day.Err != nil {
			detail = day.Err.Error()
		}
		rows = append(rows, []string{
			activity.Key(day.Date),
			string(day.Outcome),
			strconv.Itoa(day.Commits),
			detail,
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(dayColumns, rows, colorize))
	}

	kind, label := statusForRun(report.Status())
	if report.Cancelled {
		label = "stopped before all dates were processed"
	}
	fmt.Fprintln(out, renderStatusLine("Result", kind, fmt.Sprintf("%s in %s", label, report.Duration.Round(time.Millisecond)), colorize))
}

func rangeText(report workflow.Report) string {
	start, end := activity.Key(report.Start), activity.Key(report.End)
	if start == end {
		return start
	}
	return start + ".." + end
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return humanize.Comma(int64(n)) + " " + many
}
