// Package main hosts the daynote CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the workflow
// runtime, and translates terminal invocations into sync, cleanup, and
// calendar runs over the vault. Read-only commands (show, history, status,
// preflight, logs) inspect notes, the run history database, service
// readiness, and the run log.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
