package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"daynote/internal/activity"
	"daynote/internal/history"
	"daynote/internal/logging"
	"daynote/internal/note"
	"daynote/internal/services"
)

// Today syncs the current calendar day.
func (m *Manager) Today(ctx context.Context, opts RunOptions) (Report, error) {
	today := activity.Day(m.now(), m.location())
	return m.Sync(ctx, today, today, opts)
}

// Sync brings every daily note in [start, end] up to date with the feed. A
// feed failure aborts the run before any note is touched; a per-date failure
// is recorded and the loop moves on.
func (m *Manager) Sync(ctx context.Context, start, end time.Time, opts RunOptions) (Report, error) {
	if m.feed == nil || m.renderer == nil || m.store == nil {
		return Report{}, services.Wrap(services.ErrConfiguration, "workflow", "sync", "feed, renderer, and store are required", nil)
	}
	loc := m.location()
	start, end = activity.Day(start, loc), activity.Day(end, loc)
	if end.Before(start) {
		return Report{}, services.Wrap(services.ErrConfiguration, "workflow", "sync",
			fmt.Sprintf("range end %s is before start %s", activity.Key(end), activity.Key(start)), nil)
	}

	report, ctx, logger := m.beginReport(ctx, history.KindSync, start, end, opts.DryRun)
	if err := m.runPreflightChecks(logger); err != nil {
		return m.abort(ctx, logger, report, err)
	}
	if err := m.lock(); err != nil {
		return m.abort(ctx, logger, report, err)
	}
	defer m.unlock(logger)

	m.recordBegin(ctx, logger, &report)
	logger.Info("sync started",
		logging.String("range_start", activity.Key(start)),
		logging.String("range_end", activity.Key(end)),
		logging.Bool("dry_run", opts.DryRun),
		logging.String(logging.FieldEventType, "sync_started"),
	)

	records, err := m.feed.DailyCommits(ctx, start, end)
	if err != nil {
		if !errors.Is(err, services.ErrFeed) && !errors.Is(err, services.ErrConfiguration) {
			err = services.Wrap(services.ErrFeed, "workflow", "fetch activity", "", err)
		}
		return m.abort(ctx, logger, report, err)
	}
	logger.Info("activity fetched",
		logging.Int("commits", records.Total()),
		logging.Int("active_days", len(records)),
	)

	dates := activity.Range(start, end)
	for i, date := range dates {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}
		dayCtx := services.WithDate(ctx, date)
		res := m.syncDate(dayCtx, date, records.For(date), opts.DryRun)
		report.add(res)
		m.logDay(logging.WithContext(dayCtx, m.logger), res, opts.DryRun)
		m.recordDay(ctx, logger, report.RunID, res)
		if opts.Progress != nil {
			opts.Progress(res, i+1, len(dates))
		}
	}

	if !report.Cancelled && m.cfg != nil && m.cfg.Calendar.Enabled && m.calendar != nil {
		created, err := m.calendar.EnsureMonths(ctx, activity.Months(dates), opts.DryRun)
		report.MonthsCreated = created
		if err != nil {
			logging.WarnWithContext(logger, "monthly calendar update incomplete", "calendar_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check vault permissions for the month folders"),
				logging.String(logging.FieldImpact, "daily notes were still updated"),
			)
		}
	}

	report.Duration = m.now().Sub(report.StartedAt)
	m.recordFinish(ctx, logger, report, nil)
	m.notifySync(ctx, logger, report)
	logger.Info("sync finished",
		logging.String("status", string(report.Status())),
		logging.Int("created", report.Counts.Created),
		logging.Int("updated", report.Counts.Updated),
		logging.Int("retracted", report.Counts.Retracted),
		logging.Int("unchanged", report.Counts.Unchanged),
		logging.Int("skipped", report.Counts.Skipped),
		logging.Int("failed", report.Counts.Failed),
		logging.Duration("duration", report.Duration),
		logging.String(logging.FieldEventType, "sync_finished"),
	)
	if report.Cancelled {
		return report, ctx.Err()
	}
	return report, nil
}

// syncDate renders, merges, and writes one date.
func (m *Manager) syncDate(ctx context.Context, date time.Time, commits []activity.Commit, dryRun bool) DayResult {
	res := DayResult{Date: date, Commits: len(commits)}

	block, err := m.renderer.Render(ctx, date, commits)
	if err != nil {
		if !errors.Is(err, services.ErrRender) {
			err = services.Wrap(services.ErrRender, "workflow", "render", activity.Key(date), err)
		}
		if m.cfg == nil || !m.cfg.Sync.RetractOnRenderError {
			res.Outcome = OutcomeSkipped
			res.Err = err
			return res
		}
		res.Err = err
		block = note.Block{}
	}

	doc, exists, err := m.store.Read(date)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}
	if !exists && block.IsEmpty() && (m.cfg == nil || !m.cfg.Sync.CreateMissingNotes) {
		res.Outcome = OutcomeSkipped
		return res
	}

	var existing *note.Document
	if exists {
		existing = &doc
	}
	merged := m.section.Apply(existing, block, m.header(date))
	switch {
	case !exists:
		res.Outcome = OutcomeCreated
	case merged.Equal(doc):
		res.Outcome = OutcomeUnchanged
		return res
	case block.IsEmpty():
		res.Outcome = OutcomeRetracted
	default:
		res.Outcome = OutcomeUpdated
	}
	if dryRun {
		return res
	}
	if err := m.store.Write(date, merged); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
	}
	return res
}

func (m *Manager) logDay(logger *slog.Logger, res DayResult, dryRun bool) {
	switch {
	case res.Outcome == OutcomeFailed:
		logging.ErrorWithContext(logger, "daily note update failed", "note_failed",
			logging.Error(res.Err),
			logging.String(logging.FieldErrorHint, "check vault permissions and that the note is readable"),
		)
	case res.Err != nil:
		impact := "the note keeps its previous activity section"
		if res.Outcome != OutcomeSkipped {
			impact = "the activity section was retracted"
		}
		logging.WarnWithContext(logger, "activity block not rendered", "render_failed",
			logging.Error(res.Err),
			logging.String("outcome", string(res.Outcome)),
			logging.String(logging.FieldImpact, impact),
		)
	case res.Outcome == OutcomeUnchanged || res.Outcome == OutcomeSkipped:
		logger.Debug("daily note untouched", logging.String("outcome", string(res.Outcome)))
	default:
		logger.Info("daily note updated",
			logging.String("outcome", string(res.Outcome)),
			logging.Int("commits", res.Commits),
			logging.Bool("dry_run", dryRun),
		)
	}
}
