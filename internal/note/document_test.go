package note_test

import (
	"slices"
	"testing"

	"daynote/internal/note"
)

func TestParseRoundTripsBytes(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"# Title",
		"# Title\n",
		"# Title\n\nbody\n",
		"# Title\n\nbody\n\n\n",
		"# Title\r\n\r\nbody\r\n",
		"# Title\r\nmixed\nendings\r\n",
		"no newline\r",
	}
	for _, input := range inputs {
		doc := note.Parse([]byte(input))
		if got := string(doc.Bytes()); got != input {
			t.Fatalf("round trip mismatch: got %q want %q", got, input)
		}
	}
}

func TestParseCRLFStripsCarriageReturns(t *testing.T) {
	doc := note.Parse([]byte("# Title\r\n## 📊 GitHub Activity\r\n"))
	want := []string{"# Title", "## 📊 GitHub Activity"}
	if !slices.Equal(doc.Lines(), want) {
		t.Fatalf("unexpected lines: got %q want %q", doc.Lines(), want)
	}
}

func TestParseMixedEndingsKeepsCarriageReturns(t *testing.T) {
	doc := note.Parse([]byte("a\r\nb\n"))
	if doc.Line(0) != "a\r" {
		t.Fatalf("expected CR to stay inside the line, got %q", doc.Line(0))
	}
}

func TestNewAddsTrailingNewline(t *testing.T) {
	doc := note.New("# Title", "")
	if got := doc.String(); got != "# Title\n\n" {
		t.Fatalf("unexpected encoding: %q", got)
	}
	if doc.Len() != 2 {
		t.Fatalf("unexpected length: %d", doc.Len())
	}
}

func TestDocumentAccessorsCopy(t *testing.T) {
	doc := note.New("a", "b", "c")
	lines := doc.Lines()
	lines[0] = "mutated"
	slice := doc.Slice(1, 3)
	slice[0] = "mutated"
	if doc.Line(0) != "a" || doc.Line(1) != "b" {
		t.Fatalf("document mutated through accessor: %q", doc.Lines())
	}
}

func TestMergeKeepsEncodingFlags(t *testing.T) {
	doc := note.Parse([]byte("# Title\r\n\r\nbody"))
	block, err := note.ActivitySection.NewBlock("## 📊 GitHub Activity", "x")
	if err != nil {
		t.Fatalf("NewBlock: %v", err)
	}
	merged := note.ActivitySection.Apply(&doc, block, "")
	want := "# Title\r\n\r\nbody\r\n\r\n## 📊 GitHub Activity\r\nx"
	if got := merged.String(); got != want {
		t.Fatalf("unexpected encoding: got %q want %q", got, want)
	}
}
