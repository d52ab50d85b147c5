// Package logs reads back the JSON run log that daynote writes under
// paths.log_dir.
//
// Tail returns the last N records or everything after a byte offset, and can
// poll for new records until a deadline. Filter narrows records to one run,
// date, or minimum level, and Entry.Format renders a record as a single
// console line for `daynote logs`.
package logs
