// Package logging assembles structured slog loggers for the daynote CLI.
//
// It owns the console and JSON handlers, tees records into the log file under
// paths.log_dir, and exposes context-aware helpers so per-date work is tagged
// with run IDs and dates automatically. A no-op logger is provided for tests
// and wiring code that cannot fail.
package logging
