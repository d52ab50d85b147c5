package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the history database.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open creates or opens the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	store := &Store{db: db, path: path, now: func() time.Time { return time.Now().UTC() }}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun inserts run in the running state. StartedAt defaults to now.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("begin run: id required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, dry_run, started_at, status, range_start, range_end)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Kind), boolToInt(run.DryRun), formatTime(run.StartedAt),
		string(StatusRunning), run.RangeStart, run.RangeEnd,
	)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// FinishRun records the terminal status and counts of a run.
func (s *Store) FinishRun(ctx context.Context, id string, status Status, counts Counts, runErr error) error {
	var message any
	if runErr != nil {
		message = runErr.Error()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs
         SET finished_at = ?, status = ?, created = ?, updated = ?, retracted = ?,
             unchanged = ?, skipped = ?, failed = ?, error = ?
         WHERE id = ?`,
		formatTime(s.now()), string(status), counts.Created, counts.Updated, counts.Retracted,
		counts.Unchanged, counts.Skipped, counts.Failed, message, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run: unknown run %q", id)
	}
	return nil
}

// RecordDay stores the outcome of one date. Re-recording a date replaces it.
func (s *Store) RecordDay(ctx context.Context, day Day) error {
	var message any
	if day.Error != "" {
		message = day.Error
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_days (run_id, day, outcome, commits, error) VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(run_id, day) DO UPDATE SET outcome = excluded.outcome,
             commits = excluded.commits, error = excluded.error`,
		day.RunID, day.Day, day.Outcome, day.Commits, message,
	)
	if err != nil {
		return fmt.Errorf("record day %s: %w", day.Day, err)
	}
	return nil
}

const runColumns = "id, kind, dry_run, started_at, finished_at, status, range_start, range_end, created, updated, retracted, unchanged, skipped, failed, error"

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LastRun returns the newest finished run of kind. The boolean is false when
// none exists.
func (s *Store) LastRun(ctx context.Context, kind Kind) (Run, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE kind = ? AND finished_at IS NOT NULL
         ORDER BY started_at DESC LIMIT 1`, string(kind))
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("last run: %w", err)
	}
	return run, true, nil
}

// RunDays returns the per-day outcomes of a run in date order.
func (s *Store) RunDays(ctx context.Context, runID string) ([]Day, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, day, outcome, commits, error FROM run_days WHERE run_id = ? ORDER BY day`, runID)
	if err != nil {
		return nil, fmt.Errorf("list run days: %w", err)
	}
	defer rows.Close()

	var days []Day
	for rows.Next() {
		var (
			day     Day
			message sql.NullString
		)
		if err := rows.Scan(&day.RunID, &day.Day, &day.Outcome, &day.Commits, &message); err != nil {
			return nil, fmt.Errorf("scan run day: %w", err)
		}
		day.Error = message.String
		days = append(days, day)
	}
	return days, rows.Err()
}

// LookupSummary returns the cached summary for day and fingerprint.
func (s *Store) LookupSummary(ctx context.Context, day, fingerprint string) (string, bool, error) {
	var summary string
	err := s.db.QueryRowContext(ctx,
		`SELECT summary FROM summaries WHERE day = ? AND fingerprint = ?`, day, fingerprint).Scan(&summary)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup summary: %w", err)
	}
	return summary, true, nil
}

// StoreSummary caches summary for day and fingerprint.
func (s *Store) StoreSummary(ctx context.Context, day, fingerprint, model, summary string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO summaries (day, fingerprint, summary, model, created_at) VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(day, fingerprint) DO UPDATE SET summary = excluded.summary,
             model = excluded.model, created_at = excluded.created_at`,
		day, fingerprint, summary, nullableString(model), formatTime(s.now()),
	)
	if err != nil {
		return fmt.Errorf("store summary: %w", err)
	}
	return nil
}

// PruneRuns deletes runs that started before cutoff and returns how many
// were removed.
func (s *Store) PruneRuns(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		kind        string
		status      string
		dryRun      int
		startedRaw  string
		finishedRaw sql.NullString
		message     sql.NullString
	)
	if err := scanner.Scan(
		&run.ID, &kind, &dryRun, &startedRaw, &finishedRaw, &status,
		&run.RangeStart, &run.RangeEnd,
		&run.Counts.Created, &run.Counts.Updated, &run.Counts.Retracted,
		&run.Counts.Unchanged, &run.Counts.Skipped, &run.Counts.Failed,
		&message,
	); err != nil {
		return Run{}, err
	}
	run.Kind = Kind(kind)
	run.Status = Status(status)
	run.DryRun = dryRun != 0
	run.StartedAt = parseTime(startedRaw)
	if finishedRaw.Valid {
		run.FinishedAt = parseTime(finishedRaw.String)
	}
	run.Error = message.String
	return run, nil
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
