package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"daynote/internal/activity"
	"daynote/internal/history"
	"daynote/internal/logging"
	"daynote/internal/notifications"
)

func summaryFor(report Report) notifications.RunSummary {
	return notifications.RunSummary{
		RangeStart: activity.Key(report.Start),
		RangeEnd:   activity.Key(report.End),
		Created:    report.Counts.Created,
		Updated:    report.Counts.Updated,
		Retracted:  report.Counts.Retracted,
		Unchanged:  report.Counts.Unchanged,
		Skipped:    report.Counts.Skipped,
		Failed:     report.Counts.Failed,
		Commits:    report.Commits,
		Duration:   report.Duration,
		DryRun:     report.DryRun,
	}
}

func (m *Manager) notifySync(ctx context.Context, logger *slog.Logger, report Report) {
	if m.notifier == nil || report.Cancelled {
		return
	}
	m.logNotifyErr(logger, "sync completion", m.notifier.NotifySyncCompleted(ctx, summaryFor(report)))
}

func (m *Manager) notifyCleanup(ctx context.Context, logger *slog.Logger, report Report) {
	if m.notifier == nil || report.Cancelled {
		return
	}
	m.logNotifyErr(logger, "cleanup completion", m.notifier.NotifyCleanupCompleted(ctx, summaryFor(report)))
}

func (m *Manager) notifyError(ctx context.Context, logger *slog.Logger, report Report, runErr error) {
	if m.notifier == nil || runErr == nil || errors.Is(runErr, context.Canceled) {
		return
	}
	label := fmt.Sprintf("%s %s..%s", report.Kind, activity.Key(report.Start), activity.Key(report.End))
	if report.Kind == history.KindSync && report.Start.Equal(report.End) {
		label = fmt.Sprintf("sync %s", activity.Key(report.Start))
	}
	m.logNotifyErr(logger, "error", m.notifier.NotifyError(context.WithoutCancel(ctx), runErr, label))
}

func (m *Manager) logNotifyErr(logger *slog.Logger, what string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		logger.Debug("run cancelled, could not send notification", logging.String("notification", what))
		return
	}
	logger.Debug("notification failed", logging.String("notification", what), logging.Error(err))
}
