package workflow

import (
	"context"
	"time"

	"daynote/internal/activity"
	"daynote/internal/history"
	"daynote/internal/logging"
	"daynote/internal/services"
)

// Calendar ensures a monthly calendar note exists for every month touched by
// [start, end]. With stripQuickLinks, legacy quick links sections are removed
// from those month notes as well.
func (m *Manager) Calendar(ctx context.Context, start, end time.Time, stripQuickLinks bool, opts RunOptions) (Report, error) {
	if m.calendar == nil || m.store == nil {
		return Report{}, services.Wrap(services.ErrConfiguration, "workflow", "calendar", "calendar and store are required", nil)
	}
	loc := m.location()
	start, end = activity.Day(start, loc), activity.Day(end, loc)
	if end.Before(start) {
		start, end = end, start
	}

	report, ctx, logger := m.beginReport(ctx, history.KindCalendar, start, end, opts.DryRun)
	if err := m.runPreflightChecks(logger); err != nil {
		return m.abort(ctx, logger, report, err)
	}
	if err := m.lock(); err != nil {
		return m.abort(ctx, logger, report, err)
	}
	defer m.unlock(logger)
	m.recordBegin(ctx, logger, &report)

	months := activity.Months(activity.Range(start, end))
	created, err := m.calendar.EnsureMonths(ctx, months, opts.DryRun)
	report.MonthsCreated = created
	report.Counts.Created = created
	if err == nil && stripQuickLinks {
		var stripped int
		stripped, err = m.calendar.StripQuickLinks(ctx, months, opts.DryRun)
		report.MonthsStripped = stripped
		report.Counts.Updated = stripped
	}
	report.Counts.Unchanged = max(len(months)-report.Counts.Created-report.Counts.Updated, 0)
	report.Duration = m.now().Sub(report.StartedAt)
	if err != nil {
		report.Cancelled = ctx.Err() != nil
		return m.abort(ctx, logger, report, services.Wrap(services.ErrIO, "workflow", "calendar", "", err))
	}

	m.recordFinish(ctx, logger, report, nil)
	logger.Info("calendar finished",
		logging.Int("months", len(months)),
		logging.Int("created", created),
		logging.Int("stripped", report.MonthsStripped),
		logging.Bool("dry_run", opts.DryRun),
		logging.String(logging.FieldEventType, "calendar_finished"),
	)
	return report, nil
}
