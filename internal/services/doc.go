// Package services defines shared utilities consumed by the sync workflow and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, processed dates, and component names
//     for logging.
//   - Structured error markers plus the Wrap helper so callers classify
//     failures with errors.Is (IO, render, feed, configuration).
//
// Use these helpers when wiring new components so error handling and
// observability stay uniform across sync and cleanup runs.
package services
