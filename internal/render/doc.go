// Package render turns one day's commits into the generated activity block
// spliced into a daily note.
//
// Rendering is deterministic for identical input: every toggle arrives in
// Options, commits are rendered in the order given, and the optional AI
// summary comes from a Summarizer that is expected to cache its answers.
// Lines derived from commit messages or summaries that would read as a
// markdown header are escaped so they can never close the region early.
package render
