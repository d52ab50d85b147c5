// Package preflight provides readiness checks for the vault, the state
// directory, and the remote APIs that daynote depends on.
//
// These checks run in two contexts:
//   - "daynote preflight" calls RunAll and exits non-zero when any check
//     fails, so a cron job can be verified before its first sync.
//   - The CLI "daynote status" command uses the config-driven helpers
//     (GitHubStatus, LLMStatus) and CheckDirectoryAccess to display health.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
