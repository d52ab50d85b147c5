// Package notifications pushes run outcomes to ntfy.
//
// NewService returns a no-op implementation when no topic is configured, and
// each event kind can be switched off in the [notifications] config section,
// so callers notify unconditionally and never check settings themselves.
package notifications
