package workflow

import (
	"context"
	"fmt"
	"time"

	"daynote/internal/activity"
	"daynote/internal/cleanup"
	"daynote/internal/history"
	"daynote/internal/logging"
	"daynote/internal/services"
)

// Cleanup sweeps [start, end] and retracts activity sections that only hold
// the "no activity" placeholder. Missing notes are created header-only.
func (m *Manager) Cleanup(ctx context.Context, start, end time.Time, opts RunOptions) (Report, error) {
	if m.store == nil {
		return Report{}, services.Wrap(services.ErrConfiguration, "workflow", "cleanup", "store is required", nil)
	}
	loc := m.location()
	start, end = activity.Day(start, loc), activity.Day(end, loc)
	if end.Before(start) {
		return Report{}, services.Wrap(services.ErrConfiguration, "workflow", "cleanup",
			fmt.Sprintf("range end %s is before start %s", activity.Key(end), activity.Key(start)), nil)
	}

	report, ctx, logger := m.beginReport(ctx, history.KindCleanup, start, end, opts.DryRun)
	if err := m.runPreflightChecks(logger); err != nil {
		return m.abort(ctx, logger, report, err)
	}
	if err := m.lock(); err != nil {
		return m.abort(ctx, logger, report, err)
	}
	defer m.unlock(logger)

	m.recordBegin(ctx, logger, &report)
	logger.Info("cleanup started",
		logging.String("range_start", activity.Key(start)),
		logging.String("range_end", activity.Key(end)),
		logging.Bool("dry_run", opts.DryRun),
		logging.String(logging.FieldEventType, "cleanup_started"),
	)

	sweep := cleanup.Run(ctx, activity.Range(start, end), m.store, cleanup.Options{
		Section: m.section,
		Header:  m.header,
		DryRun:  opts.DryRun,
		Progress: func(res cleanup.Result, done, total int) {
			day := DayResult{Date: res.Date, Outcome: cleanupOutcome(res.Action), Err: res.Err}
			report.add(day)
			m.recordDay(ctx, logger, report.RunID, day)
			if opts.Progress != nil {
				opts.Progress(day, done, total)
			}
		},
	}, logging.WithContext(ctx, m.logger))
	report.Cancelled = sweep.Cancelled

	report.Duration = m.now().Sub(report.StartedAt)
	m.recordFinish(ctx, logger, report, nil)
	m.notifyCleanup(ctx, logger, report)
	logger.Info("cleanup finished",
		logging.String("status", string(report.Status())),
		logging.Int("created", report.Counts.Created),
		logging.Int("retracted", report.Counts.Retracted),
		logging.Int("untouched", report.Counts.Unchanged),
		logging.Int("failed", report.Counts.Failed),
		logging.Duration("duration", report.Duration),
		logging.String(logging.FieldEventType, "cleanup_finished"),
	)
	if report.Cancelled {
		return report, ctx.Err()
	}
	return report, nil
}

func cleanupOutcome(action cleanup.Action) Outcome {
	switch action {
	case cleanup.ActionCreated:
		return OutcomeCreated
	case cleanup.ActionRetracted:
		return OutcomeRetracted
	case cleanup.ActionFailed:
		return OutcomeFailed
	default:
		return OutcomeUnchanged
	}
}
