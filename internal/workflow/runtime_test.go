package workflow_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"daynote/internal/logging"
	"daynote/internal/render"
	"daynote/internal/testsupport"
	"daynote/internal/workflow"
)

func githubAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"name": "alpha", "full_name": "octocat/alpha", "owner": map[string]string{"login": "octocat"}},
		})
	})
	mux.HandleFunc("GET /repos/octocat/alpha/commits", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("author") != "octocat" {
			t.Errorf("unexpected author filter: %q", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"sha":      "0123456789abcdef",
				"html_url": "https://github.com/octocat/alpha/commit/0123456789abcdef",
				"commit": map[string]any{
					"message": "feat(parser): add table support",
					"author":  map[string]any{"date": "2025-07-01T09:30:00Z"},
				},
			},
			{
				"sha":      "fedcba9876543210",
				"html_url": "https://github.com/octocat/alpha/commit/fedcba9876543210",
				"commit": map[string]any{
					"message": "Auto sync vault",
					"author":  map[string]any{"date": "2025-07-01T11:00:00Z"},
				},
			},
		})
	})
	mux.HandleFunc("GET /repos/octocat/alpha/commits/{sha}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]any{
				{"filename": "parser/table.go", "status": "added", "additions": 120, "deletions": 0},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRuntimeSyncEndToEnd(t *testing.T) {
	gh := githubAPI(t)
	var llmCalls atomic.Int32
	llmAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		llmCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": `{"summary":"Added table parsing."}`}}},
		})
	}))
	defer llmAPI.Close()

	cfg := testsupport.NewConfig(t,
		testsupport.WithGitHubAPI(gh.URL),
		testsupport.WithAISummary(llmAPI.URL),
		testsupport.WithCalendar(false),
	)
	rt, err := workflow.NewRuntime(cfg, logging.NewNop(),
		workflow.WithClock(func() time.Time { return day(1).Add(22 * time.Hour) }),
	)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer rt.Close()

	report, err := rt.Manager.Today(context.Background(), workflow.RunOptions{})
	if err != nil {
		t.Fatalf("Today returned error: %v", err)
	}
	if got := outcomes(report); got != "created" {
		t.Fatalf("unexpected outcomes: %q", got)
	}
	if report.Commits != 1 {
		t.Fatalf("expected sync commit to be filtered, got %d commits", report.Commits)
	}

	content := testsupport.ReadFile(t, rt.Vault.Path(day(1)))
	for _, want := range []string{render.AISummaryHeader, "Added table parsing.", "Add table support", "parser/table.go"} {
		if !strings.Contains(content, want) {
			t.Fatalf("note missing %q:\n%s", want, content)
		}
	}
	if strings.Contains(content, "Auto sync vault") {
		t.Fatalf("filtered commit rendered:\n%s", content)
	}

	again, err := rt.Manager.Today(context.Background(), workflow.RunOptions{})
	if err != nil {
		t.Fatalf("second Today returned error: %v", err)
	}
	if got := outcomes(again); got != "unchanged" {
		t.Fatalf("expected unchanged re-run, got %q", got)
	}
	if calls := llmCalls.Load(); calls != 1 {
		t.Fatalf("expected cached summary on re-run, got %d LLM calls", calls)
	}
}
