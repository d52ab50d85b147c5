// Package github is the activity feed: it lists a user's repositories,
// collects the commits they authored in a date range, and groups them into
// per-day record sets for the renderer.
//
// Only the REST endpoints below are used:
//
//	GET /user                              credential check
//	GET /users/{user}/repos                repository listing (paginated)
//	GET /repos/{owner}/{repo}/commits      commits by author in [since, until)
//	GET /repos/{owner}/{repo}/commits/{sha} per-file change details
//
// A repository that fails to list is logged and skipped so one broken repo
// never hides the rest of the day. Failing to list repositories at all is an
// activity feed error. Transient HTTP failures are retried through the
// shared retry policy.
package github
