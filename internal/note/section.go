package note

import "strings"

const (
	// ActivityMarker opens the generated GitHub activity region.
	ActivityMarker = "## 📊 GitHub Activity"
	// SiblingHeaderPrefix starts every top-level section of a daily note.
	SiblingHeaderPrefix = "## "
	// ActivityPlaceholder is the body older runs wrote for days without commits.
	ActivityPlaceholder = "*No GitHub activity for this day.*"
)

// ActivitySection describes the generated activity region of a daily note.
var ActivitySection = Section{
	Marker:       ActivityMarker,
	HeaderPrefix: SiblingHeaderPrefix,
	Placeholder:  ActivityPlaceholder,
}

// Section identifies one machine-owned region of a note.
type Section struct {
	// Marker is compared against trimmed lines and opens the region.
	Marker string
	// HeaderPrefix closes the region at the next line that starts with it.
	HeaderPrefix string
	// Placeholder is the empty-state body used by the degenerate test.
	Placeholder string
}

// Region is the half-open line interval [Start, End) occupied by a section.
// The zero value means the section is absent.
type Region struct {
	Start int
	End   int
}

// Found reports whether the region exists. A located region always contains
// at least its marker line.
func (r Region) Found() bool {
	return r.End > r.Start
}

// Len returns the number of lines in the region.
func (r Region) Len() int {
	if !r.Found() {
		return 0
	}
	return r.End - r.Start
}

type scanState int

const (
	beforeMarker scanState = iota
	inRegion
	afterRegion
)

// Locate finds the section's region in doc. The region starts at the first
// line equal to the marker and runs until the next sibling header or the end
// of the document.
func (s Section) Locate(doc Document) Region {
	state := beforeMarker
	region := Region{}
	for i := 0; i < doc.Len() && state != afterRegion; i++ {
		line := strings.TrimSpace(doc.Line(i))
		switch state {
		case beforeMarker:
			if line == s.Marker {
				region.Start = i
				state = inRegion
			}
		case inRegion:
			if s.terminates(line) {
				region.End = i
				state = afterRegion
			}
		}
	}
	switch state {
	case beforeMarker:
		return Region{}
	case inRegion:
		region.End = doc.Len()
	}
	return region
}

// terminates reports whether a trimmed line closes an open region.
func (s Section) terminates(trimmed string) bool {
	return strings.HasPrefix(trimmed, s.HeaderPrefix) && trimmed != s.Marker
}

// Degenerate reports whether region holds nothing but the marker, optional
// blank lines, and a single placeholder line, in at most three lines.
func (s Section) Degenerate(doc Document, region Region) bool {
	if !region.Found() || region.Len() > 3 || s.Placeholder == "" {
		return false
	}
	if strings.TrimSpace(doc.Line(region.Start)) != s.Marker {
		return false
	}
	placeholders := 0
	for i := region.Start + 1; i < region.End; i++ {
		switch strings.TrimSpace(doc.Line(i)) {
		case "":
		case s.Placeholder:
			placeholders++
		default:
			return false
		}
	}
	return placeholders == 1
}
