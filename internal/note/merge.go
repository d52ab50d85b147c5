package note

import "strings"

// Merge combines an existing note, its located region, and a freshly rendered
// block into the next version of the note. A nil existing document means the
// note does not exist yet; header is then used as its first line.
//
// Lines outside region are carried over verbatim and in order. Merging the
// same block into Merge's own output yields that output again.
func Merge(existing *Document, region Region, block Block, header string) Document {
	if existing == nil {
		lines := make([]string, 0, 2+block.Len())
		lines = append(lines, header, "")
		lines = append(lines, block.lines...)
		return New(lines...)
	}

	doc := *existing
	switch {
	case !block.IsEmpty() && region.Found():
		lines := make([]string, 0, doc.Len()-region.Len()+block.Len())
		lines = append(lines, doc.lines[:region.Start]...)
		lines = append(lines, block.lines...)
		lines = append(lines, doc.lines[region.End:]...)
		return doc.withLines(lines)
	case !block.IsEmpty():
		lines := make([]string, 0, doc.Len()+1+block.Len())
		lines = append(lines, doc.lines...)
		if needsSeparator(doc) {
			lines = append(lines, "")
		}
		lines = append(lines, block.lines...)
		return doc.withLines(lines)
	case region.Found():
		lines := make([]string, 0, doc.Len()-region.Len())
		lines = append(lines, doc.lines[:region.Start]...)
		lines = append(lines, doc.lines[region.End:]...)
		return doc.withLines(lines)
	default:
		return doc.withLines(doc.Lines())
	}
}

// needsSeparator reports whether a blank line must precede an appended block.
func needsSeparator(doc Document) bool {
	n := doc.Len()
	return n > 0 && strings.TrimSpace(doc.lines[n-1]) != ""
}

// Apply locates s in existing and merges block into it.
func (s Section) Apply(existing *Document, block Block, header string) Document {
	region := Region{}
	if existing != nil {
		region = s.Locate(*existing)
	}
	return Merge(existing, region, block, header)
}

// Retract removes the section's region from doc. The second result reports
// whether anything was removed.
func (s Section) Retract(doc Document) (Document, bool) {
	region := s.Locate(doc)
	if !region.Found() {
		return doc, false
	}
	return Merge(&doc, region, Block{}, ""), true
}
