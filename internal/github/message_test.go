package github

import "testing"

func TestReadableMessage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"conventional prefix", "feat: add login page", "Add login page"},
		{"scoped prefix", "fix(api): handle nil response.", "Handle nil response"},
		{"bracket prefix", "[docs] update readme!", "Update readme"},
		{"case insensitive", "Chore: bump deps", "Bump deps"},
		{"inline scope", "ui (header): tweak spacing", "Tweak spacing"},
		{"first line only", "refactor: split parser\n\nlong body", "Split parser"},
		{"plain message", "initial commit", "Initial commit"},
		{"only prefix falls back", "fix:", "fix:"},
		{"punctuation only falls back", "?!", "?!"},
	}
	for _, tt := range tests {
		if got := ReadableMessage(tt.in); got != tt.want {
			t.Fatalf("%s: unexpected message: got %q want %q", tt.name, got, tt.want)
		}
	}
}

func TestReadableMessageTruncates(t *testing.T) {
	long := ""
	for len(long) < 150 {
		long += "word "
	}
	got := ReadableMessage(long)
	if len([]rune(got)) != maxMessageRunes {
		t.Fatalf("expected %d runes, got %d (%q)", maxMessageRunes, len([]rune(got)), got)
	}
	if got[len(got)-3:] != "..." {
		t.Fatalf("expected ellipsis, got %q", got)
	}
}

func TestReadableMessageNormalizesToNFC(t *testing.T) {
	decomposed := "cafe\u0301 menu"
	if got := ReadableMessage(decomposed); got != "Caf\u00e9 menu" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
