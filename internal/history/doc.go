// Package history persists sync and cleanup runs, their per-day outcomes, and
// cached AI summaries in a SQLite database under the state directory.
//
// The database runs in WAL mode with a busy timeout so the CLI can read
// history while a scheduled sync writes. Schema changes ship as numbered
// files in migrations/ and are applied in order on Open.
package history
