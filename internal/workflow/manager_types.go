package workflow

import (
	"context"
	"time"

	"daynote/internal/activity"
	"daynote/internal/history"
	"daynote/internal/note"
)

// Outcome is what a run did for one date.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeRetracted Outcome = "retracted"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// DayResult is the outcome for one date.
type DayResult struct {
	Date    time.Time
	Outcome Outcome
	Commits int
	Err     error
}

// Report summarizes a finished run.
type Report struct {
	RunID     string
	Kind      history.Kind
	Start     time.Time
	End       time.Time
	DryRun    bool
	StartedAt time.Time
	Days      []DayResult
	Counts    history.Counts
	Commits   int
	Duration  time.Duration
	Cancelled bool
	// MonthsCreated counts monthly calendar notes created (or, in dry-run,
	// that would be created).
	MonthsCreated int
	// MonthsStripped counts month notes whose quick links were removed.
	MonthsStripped int

	begun bool
}

// Status maps the report to a terminal history status.
func (r Report) Status() history.Status {
	switch {
	case r.Cancelled:
		return history.StatusCancelled
	case r.Counts.Failed > 0 && r.Counts.Failed == r.Counts.Total():
		return history.StatusFailed
	case r.Counts.Failed > 0:
		return history.StatusPartial
	default:
		return history.StatusSucceeded
	}
}

// RunOptions tunes a single run.
type RunOptions struct {
	// DryRun computes outcomes without writing notes.
	DryRun bool
	// Progress is called after each date.
	Progress func(res DayResult, done, total int)
}

// Store reads and writes notes and guards the vault against a second writer.
type Store interface {
	Read(date time.Time) (note.Document, bool, error)
	Write(date time.Time, doc note.Document) error
	Lock() error
	Unlock() error
}

// Feed retrieves commits grouped by day.
type Feed interface {
	DailyCommits(ctx context.Context, start, end time.Time) (activity.RecordSet, error)
}

// Renderer turns one day's commits into an activity block.
type Renderer interface {
	Render(ctx context.Context, date time.Time, commits []activity.Commit) (note.Block, error)
}

// Calendar maintains monthly calendar notes.
type Calendar interface {
	EnsureMonths(ctx context.Context, months []time.Time, dryRun bool) (int, error)
	StripQuickLinks(ctx context.Context, months []time.Time, dryRun bool) (int, error)
}

// Recorder persists run history.
type Recorder interface {
	BeginRun(ctx context.Context, run history.Run) error
	FinishRun(ctx context.Context, id string, status history.Status, counts history.Counts, runErr error) error
	RecordDay(ctx context.Context, day history.Day) error
}

func (r *Report) add(res DayResult) {
	r.Days = append(r.Days, res)
	r.Commits += res.Commits
	switch res.Outcome {
	case OutcomeCreated:
		r.Counts.Created++
	case OutcomeUpdated:
		r.Counts.Updated++
	case OutcomeRetracted:
		r.Counts.Retracted++
	case OutcomeUnchanged:
		r.Counts.Unchanged++
	case OutcomeSkipped:
		r.Counts.Skipped++
	case OutcomeFailed:
		r.Counts.Failed++
	}
}
