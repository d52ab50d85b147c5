// Package workflow runs the per-date update loop that keeps daily notes in
// step with GitHub activity.
//
// The Manager takes the vault lock, fetches a date range from the activity
// feed, and for every date renders the activity block, merges it into the
// note through the section engine, and writes the note only when it changed.
// Each date ends with one outcome (created, updated, retracted, unchanged,
// skipped, failed); a failing date never stops the others. Around the loop
// the Manager ensures monthly calendar notes, records the run in history,
// and publishes ntfy notifications. Cleanup and calendar passes reuse the
// same lock, history, and notification plumbing.
package workflow
