package note_test

import (
	"slices"
	"testing"

	"daynote/internal/note"
)

func mustBlock(t *testing.T, lines ...string) note.Block {
	t.Helper()
	block, err := note.ActivitySection.NewBlock(lines...)
	if err != nil {
		t.Fatalf("NewBlock: %v", err)
	}
	return block
}

func existingNote() note.Document {
	return note.New("# Title", "", "body text", marker, "old line", "## Other")
}

func TestMergeReplacesRegion(t *testing.T) {
	doc := existingNote()
	block := mustBlock(t, marker, "new line 1", "new line 2")

	got := note.Merge(&doc, note.ActivitySection.Locate(doc), block, "")
	want := []string{"# Title", "", "body text", marker, "new line 1", "new line 2", "## Other"}
	if !slices.Equal(got.Lines(), want) {
		t.Fatalf("unexpected merge: got %q want %q", got.Lines(), want)
	}
}

func TestMergeEmptyBlockRetractsRegion(t *testing.T) {
	doc := existingNote()

	got := note.Merge(&doc, note.ActivitySection.Locate(doc), note.Block{}, "")
	want := []string{"# Title", "", "body text", "## Other"}
	if !slices.Equal(got.Lines(), want) {
		t.Fatalf("unexpected merge: got %q want %q", got.Lines(), want)
	}
	if note.ActivitySection.Locate(got).Found() {
		t.Fatal("expected region to be gone after retraction")
	}
}

func TestMergeAbsentDocumentEmptyBlock(t *testing.T) {
	got := note.Merge(nil, note.Region{}, note.Block{}, "# Friday, July 18, 2025")
	want := []string{"# Friday, July 18, 2025", ""}
	if !slices.Equal(got.Lines(), want) {
		t.Fatalf("unexpected merge: got %q want %q", got.Lines(), want)
	}
	if note.ActivitySection.Locate(got).Found() {
		t.Fatal("header-only note must not contain a region")
	}
}

func TestMergeAbsentDocumentWithBlock(t *testing.T) {
	block := mustBlock(t, marker, "", "**Summary:** 1 commits across 1 repositories")
	got := note.Merge(nil, note.Region{}, block, "# Friday, July 18, 2025")

	want := []string{"# Friday, July 18, 2025", "", marker, "", "**Summary:** 1 commits across 1 repositories"}
	if !slices.Equal(got.Lines(), want) {
		t.Fatalf("unexpected merge: got %q want %q", got.Lines(), want)
	}
	region := note.ActivitySection.Locate(got)
	if region != (note.Region{Start: 2, End: 5}) {
		t.Fatalf("region should span exactly the block, got %+v", region)
	}
}

func TestMergeAppendAddsSingleSeparator(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "non-blank last line gets a separator",
			lines: []string{"# Title", "", "notes"},
			want:  []string{"# Title", "", "notes", "", marker, "x"},
		},
		{
			name:  "blank last line is reused",
			lines: []string{"# Title", "", "notes", ""},
			want:  []string{"# Title", "", "notes", "", marker, "x"},
		},
		{
			name:  "whitespace-only last line counts as blank",
			lines: []string{"# Title", "  "},
			want:  []string{"# Title", "  ", marker, "x"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := note.New(tc.lines...)
			block := mustBlock(t, marker, "x")
			got := note.ActivitySection.Apply(&doc, block, "")
			if !slices.Equal(got.Lines(), tc.want) {
				t.Fatalf("unexpected merge: got %q want %q", got.Lines(), tc.want)
			}
			again := note.ActivitySection.Apply(&got, block, "")
			if !again.Equal(got) {
				t.Fatalf("append not idempotent: %q then %q", got.Lines(), again.Lines())
			}
		})
	}
}

func TestMergeEmptyParsedDocumentAppendsWithoutSeparator(t *testing.T) {
	doc := note.Parse(nil)
	got := note.ActivitySection.Apply(&doc, mustBlock(t, marker, "x"), "")
	if !slices.Equal(got.Lines(), []string{marker, "x"}) {
		t.Fatalf("unexpected merge: %q", got.Lines())
	}
}

func TestMergeNoRegionEmptyBlockIsNoop(t *testing.T) {
	doc := note.Parse([]byte("# Title\n\nnotes"))
	got := note.ActivitySection.Apply(&doc, note.Block{}, "")
	if !got.Equal(doc) {
		t.Fatalf("expected unchanged document, got %q", got.String())
	}
}

func TestMergeRegionAtEndOfDocument(t *testing.T) {
	doc := note.Parse([]byte("# Title\n\n## 📊 GitHub Activity\n\nold\n"))
	block := mustBlock(t, marker, "", "new", "")
	got := note.ActivitySection.Apply(&doc, block, "")
	if want := "# Title\n\n## 📊 GitHub Activity\n\nnew\n\n"; got.String() != want {
		t.Fatalf("unexpected merge: got %q want %q", got.String(), want)
	}
}

func TestRetract(t *testing.T) {
	doc := existingNote()
	got, removed := note.ActivitySection.Retract(doc)
	if !removed {
		t.Fatal("expected region to be removed")
	}
	if !slices.Equal(got.Lines(), []string{"# Title", "", "body text", "## Other"}) {
		t.Fatalf("unexpected lines: %q", got.Lines())
	}
	if _, removed := note.ActivitySection.Retract(got); removed {
		t.Fatal("second retraction must be a no-op")
	}
}
