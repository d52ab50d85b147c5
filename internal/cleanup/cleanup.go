// Package cleanup sweeps a date range of persisted daily notes and retracts
// activity regions that hold nothing but the "no activity" placeholder.
//
// The sweep is independent of any fetched activity: it only looks at what is
// already on disk. Each date is handled on its own; a failure is recorded for
// that date and the sweep moves on.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"daynote/internal/activity"
	"daynote/internal/logging"
	"daynote/internal/note"
	"daynote/internal/services"
)

// Store reads and writes daily notes by date.
type Store interface {
	Read(date time.Time) (note.Document, bool, error)
	Write(date time.Time, doc note.Document) error
}

// Action is what the sweep did for one date.
type Action string

const (
	ActionCreated   Action = "created"
	ActionRetracted Action = "retracted"
	ActionUntouched Action = "untouched"
	ActionFailed    Action = "failed"
)

// Result is the outcome for one date.
type Result struct {
	Date   time.Time
	Action Action
	Err    error
}

// Report collects the outcome of a sweep in date order.
type Report struct {
	Results []Result
	// Cancelled is set when the context ended before every date was visited.
	Cancelled bool
}

// Count returns how many dates ended with action.
func (r Report) Count(action Action) int {
	n := 0
	for _, res := range r.Results {
		if res.Action == action {
			n++
		}
	}
	return n
}

// Err joins every per-date failure, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", activity.Key(res.Date), res.Err))
		}
	}
	return errors.Join(errs...)
}

// Options tunes a sweep.
type Options struct {
	// Section is the region to inspect. The zero value means the activity
	// section.
	Section note.Section
	// Header builds the title line of notes created for absent dates.
	Header func(time.Time) string
	// DryRun computes actions without writing.
	DryRun bool
	// Progress is called after each date.
	Progress func(res Result, done, total int)
}

// Run sweeps dates in order.
func Run(ctx context.Context, dates []time.Time, store Store, opts Options, logger *slog.Logger) Report {
	logger = logging.NewComponentLogger(logger, "cleanup")
	section := opts.Section
	if section.Marker == "" {
		section = note.ActivitySection
	}
	report := Report{Results: make([]Result, 0, len(dates))}
	for i, date := range dates {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}
		res := sweepDate(date, store, section, opts)
		report.Results = append(report.Results, res)

		dayLogger := logger.With(logging.String(logging.FieldDate, activity.Key(date)))
		switch res.Action {
		case ActionFailed:
			logging.ErrorWithContext(dayLogger, "cleanup failed for date", "cleanup_date_failed",
				logging.Error(res.Err),
				logging.String(logging.FieldErrorHint, "check vault permissions and that the note is readable"),
			)
		case ActionUntouched:
			dayLogger.Debug("note untouched")
		default:
			dayLogger.Info("note cleaned", logging.String("action", string(res.Action)), logging.Bool("dry_run", opts.DryRun))
		}
		if opts.Progress != nil {
			opts.Progress(res, i+1, len(dates))
		}
	}
	return report
}

func sweepDate(date time.Time, store Store, section note.Section, opts Options) Result {
	res := Result{Date: date, Action: ActionUntouched}
	doc, ok, err := store.Read(date)
	if err != nil {
		return failed(res, err)
	}
	if !ok {
		header := ""
		if opts.Header != nil {
			header = opts.Header(date)
		}
		created := note.Merge(nil, note.Region{}, note.Block{}, header)
		if !opts.DryRun {
			if err := store.Write(date, created); err != nil {
				return failed(res, err)
			}
		}
		res.Action = ActionCreated
		return res
	}
	region := section.Locate(doc)
	if !section.Degenerate(doc, region) {
		return res
	}
	retracted := note.Merge(&doc, region, note.Block{}, "")
	if !opts.DryRun {
		if err := store.Write(date, retracted); err != nil {
			return failed(res, err)
		}
	}
	res.Action = ActionRetracted
	return res
}

func failed(res Result, err error) Result {
	res.Action = ActionFailed
	if !errors.Is(err, services.ErrIO) {
		err = services.Wrap(services.ErrIO, "cleanup", "sweep", activity.Key(res.Date), err)
	}
	res.Err = err
	return res
}
