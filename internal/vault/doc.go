// Package vault maps calendar dates to notes inside an Obsidian vault and
// persists them.
//
// Daily notes live at <notes root>/<YYYY>/<Month>/<DD-MM-YYYY>.md and monthly
// calendars at <notes root>/<YYYY>/<Month>.md. Writes replace the whole file
// atomically, so an interrupted run leaves either the old or the new note.
// A file lock under the state directory keeps two daynote processes from
// writing the vault at the same time.
package vault
