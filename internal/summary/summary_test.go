package summary_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"daynote/internal/activity"
	"daynote/internal/summary"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
	prompt   string
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, _, user string) (string, error) {
	f.calls++
	f.prompt = user
	return f.response, f.err
}

type memoryCache struct {
	entries map[string]string
}

func (m *memoryCache) LookupSummary(_ context.Context, day, fingerprint string) (string, bool, error) {
	value, ok := m.entries[day+"/"+fingerprint]
	return value, ok, nil
}

func (m *memoryCache) StoreSummary(_ context.Context, day, fingerprint, _, value string) error {
	if m.entries == nil {
		m.entries = make(map[string]string)
	}
	m.entries[day+"/"+fingerprint] = value
	return nil
}

var day = time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC)

func commits() []activity.Commit {
	return []activity.Commit{
		{Repo: "daynote", SHA: "aaa", Message: "feat: add engine", Readable: "Add engine"},
		{Repo: "dotfiles", SHA: "bbb", Message: "tweak zshrc"},
	}
}

func TestSummarizeCachesByFingerprint(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n{\"summary\": \"Built the engine.\"}\n```"}
	cache := &memoryCache{}
	s := summary.NewCached(completer, cache, "demo", "", nil)

	first, err := s.Summarize(context.Background(), day, commits())
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if first != "Built the engine." {
		t.Fatalf("unexpected summary: %q", first)
	}
	if !strings.Contains(completer.prompt, "- daynote: Add engine") || !strings.Contains(completer.prompt, "Repositories: daynote, dotfiles") {
		t.Fatalf("prompt missing commit details:\n%s", completer.prompt)
	}

	reordered := commits()
	reordered[0], reordered[1] = reordered[1], reordered[0]
	completer.response = `{"summary":"different"}`
	second, err := s.Summarize(context.Background(), day, reordered)
	if err != nil {
		t.Fatalf("second Summarize returned error: %v", err)
	}
	if second != first || completer.calls != 1 {
		t.Fatalf("expected cached summary, got %q after %d calls", second, completer.calls)
	}
}

func TestSummarizeSurfacesFailures(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
	}{
		{"completion error", &fakeCompleter{err: errors.New("boom")}},
		{"invalid json", &fakeCompleter{response: "not json"}},
		{"empty summary", &fakeCompleter{response: `{"summary":"  "}`}},
	}
	for _, tt := range tests {
		cache := &memoryCache{}
		s := summary.NewCached(tt.completer, cache, "demo", "custom prompt", nil)
		if _, err := s.Summarize(context.Background(), day, commits()); err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		if len(cache.entries) != 0 {
			t.Fatalf("%s: expected nothing cached", tt.name)
		}
	}
}

func TestSummarizeNoCommits(t *testing.T) {
	completer := &fakeCompleter{}
	s := summary.NewCached(completer, nil, "", "", nil)
	got, err := s.Summarize(context.Background(), day, nil)
	if err != nil || got != "" || completer.calls != 0 {
		t.Fatalf("expected no-op, got %q err=%v calls=%d", got, err, completer.calls)
	}
}

func TestFingerprintIgnoresOrder(t *testing.T) {
	a := commits()
	b := []activity.Commit{a[1], a[0]}
	if summary.Fingerprint(a) != summary.Fingerprint(b) {
		t.Fatal("expected fingerprint to ignore order")
	}
	if summary.Fingerprint(a) == summary.Fingerprint(a[:1]) {
		t.Fatal("expected fingerprint to change with the commit set")
	}
}
