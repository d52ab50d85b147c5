package note

import (
	"bytes"
	"slices"
	"strings"
)

// Document is an ordered sequence of text lines without terminators.
//
// Documents are values: every transformation returns a new Document and the
// backing slice is never shared with callers.
type Document struct {
	lines           []string
	trailingNewline bool
	crlf            bool
}

// New builds an LF document with a trailing newline from the given lines.
func New(lines ...string) Document {
	return Document{lines: slices.Clone(lines), trailingNewline: true}
}

// Parse splits raw note bytes into a Document. The line terminator style and
// the presence of a final newline are recorded so Bytes reproduces data
// exactly.
func Parse(data []byte) Document {
	if len(data) == 0 {
		return Document{}
	}
	text := string(data)
	crlf := isUniformCRLF(text)
	if crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		text = text[:len(text)-1]
	}
	return Document{
		lines:           strings.Split(text, "\n"),
		trailingNewline: trailing,
		crlf:            crlf,
	}
}

// isUniformCRLF reports whether every LF in text is preceded by CR. Mixed
// files are treated as LF so stray CRs stay inside their lines.
func isUniformCRLF(text string) bool {
	lf := strings.Count(text, "\n")
	return lf > 0 && strings.Count(text, "\r\n") == lf
}

// Bytes encodes the document using its recorded terminator style.
func (d Document) Bytes() []byte {
	sep := "\n"
	if d.crlf {
		sep = "\r\n"
	}
	var buf bytes.Buffer
	for i, line := range d.lines {
		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(line)
	}
	if d.trailingNewline && len(d.lines) > 0 {
		buf.WriteString(sep)
	}
	return buf.Bytes()
}

// String returns the encoded document.
func (d Document) String() string {
	return string(d.Bytes())
}

// Len returns the number of lines.
func (d Document) Len() int {
	return len(d.lines)
}

// Line returns the line at index i.
func (d Document) Line(i int) string {
	return d.lines[i]
}

// Lines returns a copy of all lines.
func (d Document) Lines() []string {
	return slices.Clone(d.lines)
}

// Slice returns a copy of the lines in [start, end).
func (d Document) Slice(start, end int) []string {
	return slices.Clone(d.lines[start:end])
}

// Equal reports whether both documents encode to the same bytes.
func (d Document) Equal(other Document) bool {
	return bytes.Equal(d.Bytes(), other.Bytes())
}

// withLines returns a document carrying d's encoding flags and the given lines.
func (d Document) withLines(lines []string) Document {
	return Document{lines: lines, trailingNewline: d.trailingNewline, crlf: d.crlf}
}
