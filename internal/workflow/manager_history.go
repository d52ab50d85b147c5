package workflow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"daynote/internal/activity"
	"daynote/internal/history"
	"daynote/internal/logging"
	"daynote/internal/services"
	"daynote/internal/vault"
)

func newRunID() string {
	return uuid.NewString()
}

// beginReport allocates a run identifier and annotates ctx and the logger
// with it.
func (m *Manager) beginReport(ctx context.Context, kind history.Kind, start, end time.Time, dryRun bool) (Report, context.Context, *slog.Logger) {
	report := Report{
		RunID:     m.newID(),
		Kind:      kind,
		Start:     start,
		End:       end,
		DryRun:    dryRun,
		StartedAt: m.now(),
	}
	ctx = services.WithRunID(ctx, report.RunID)
	return report, ctx, logging.WithContext(ctx, m.logger).With(logging.String("run_kind", string(kind)))
}

// abort ends a run that could not process any date.
func (m *Manager) abort(ctx context.Context, logger *slog.Logger, report Report, err error) (Report, error) {
	report.Duration = m.now().Sub(report.StartedAt)
	logging.ErrorWithContext(logger, "run aborted", string(report.Kind)+"_aborted",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, abortHint(err)),
	)
	m.recordFinish(ctx, logger, report, err)
	m.notifyError(ctx, logger, report, err)
	return report, err
}

func abortHint(err error) string {
	switch {
	case errors.Is(err, vault.ErrLocked):
		return "another daynote run holds the vault lock; wait for it to finish"
	case errors.Is(err, services.ErrFeed):
		return "check the GitHub token, username, and network access"
	case errors.Is(err, services.ErrConfiguration):
		return "run 'daynote config validate' and 'daynote status'"
	default:
		return "rerun with --verbose for details"
	}
}

func (m *Manager) lock() error {
	if err := m.store.Lock(); err != nil {
		if errors.Is(err, vault.ErrLocked) {
			return err
		}
		return services.Wrap(services.ErrIO, "workflow", "lock vault", "", err)
	}
	return nil
}

func (m *Manager) unlock(logger *slog.Logger) {
	if err := m.store.Unlock(); err != nil {
		logger.Warn("vault unlock failed", logging.Error(err))
	}
}

func (m *Manager) recordBegin(ctx context.Context, logger *slog.Logger, report *Report) {
	if m.history == nil {
		return
	}
	err := m.history.BeginRun(ctx, history.Run{
		ID:         report.RunID,
		Kind:       report.Kind,
		DryRun:     report.DryRun,
		StartedAt:  report.StartedAt.UTC(),
		RangeStart: activity.Key(report.Start),
		RangeEnd:   activity.Key(report.End),
	})
	if err != nil {
		logging.WarnWithContext(logger, "run history unavailable", "history_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this run will not appear in 'daynote history'"),
		)
		return
	}
	report.begun = true
}

func (m *Manager) recordDay(ctx context.Context, logger *slog.Logger, runID string, res DayResult) {
	if m.history == nil {
		return
	}
	day := history.Day{
		RunID:   runID,
		Day:     activity.Key(res.Date),
		Outcome: string(res.Outcome),
		Commits: res.Commits,
	}
	if res.Err != nil {
		day.Error = res.Err.Error()
	}
	if err := m.history.RecordDay(ctx, day); err != nil {
		logger.Debug("run day not recorded", logging.String(logging.FieldDate, day.Day), logging.Error(err))
	}
}

func (m *Manager) recordFinish(ctx context.Context, logger *slog.Logger, report Report, runErr error) {
	if m.history == nil || !report.begun {
		return
	}
	status := report.Status()
	if runErr != nil {
		status = history.StatusFailed
	}
	// The run context may already be cancelled; the final row still needs writing.
	if err := m.history.FinishRun(context.WithoutCancel(ctx), report.RunID, status, report.Counts, runErr); err != nil {
		logger.Warn("run history not finalized", logging.Error(err))
	}
}
