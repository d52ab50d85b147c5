// Package note implements the section-aware merge engine for daily notes.
//
// A Document is an immutable line sequence that round-trips the bytes it was
// parsed from. A Section describes one machine-owned region inside a note: the
// marker line that opens it and the header prefix that closes it. Locate finds
// that region with a three-state scan, and Merge splices a freshly rendered
// Block into the note while leaving every line outside the region untouched.
//
// The package performs no I/O. Reading and writing notes belongs to the vault
// package; rendering blocks belongs to render. Keeping the engine pure lets the
// idempotence and preservation guarantees be checked directly in tests.
package note
