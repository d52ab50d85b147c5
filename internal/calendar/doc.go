// Package calendar maintains the monthly calendar notes that link to each
// daily note.
//
// A month note is only ever created, never rewritten: if the user already has
// one it is left alone. When another month of the same year exists, that
// file is used as a template so custom sections carry over, with the title,
// calendar view, and monthly summary regenerated through the note engine.
package calendar
