package github

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"daynote/internal/services"
	"daynote/internal/services/retry"
)

type fakeCommit struct {
	sha     string
	message string
	date    string
}

func listing(base string, commits ...fakeCommit) []map[string]any {
	out := make([]map[string]any, 0, len(commits))
	for _, c := range commits {
		out = append(out, map[string]any{
			"sha":      c.sha,
			"html_url": base + "/commit/" + c.sha,
			"commit": map[string]any{
				"message": c.message,
				"author":  map[string]any{"date": c.date},
			},
		})
	}
	return out
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func newTestClient(server *httptest.Server, cfg Config) *Client {
	cfg.BaseURL = server.URL
	if cfg.Username == "" {
		cfg.Username = "octocat"
	}
	if cfg.Token == "" {
		cfg.Token = "abc"
	}
	return NewClient(cfg, WithRetryPolicy(retry.Policy{MaxAttempts: 1, Sleeper: func(time.Duration) {}}))
}

func TestDailyCommitsGroupsFiltersAndSkipsBrokenRepos(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("GET /users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "token abc" {
			t.Errorf("unexpected auth header %q", got)
		}
		writeJSON(t, w, []map[string]any{
			{"name": "alpha", "owner": map[string]any{"login": "octocat"}},
			{"name": "broken", "owner": map[string]any{"login": "octocat"}},
			{"name": "empty", "owner": map[string]any{"login": "octocat"}},
		})
	})
	mux.HandleFunc("GET /repos/octocat/alpha/commits", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("author") != "octocat" {
			t.Errorf("unexpected author filter %q", q.Get("author"))
		}
		if q.Get("since") != "2025-07-17T00:00:00Z" || q.Get("until") != "2025-07-19T00:00:00Z" {
			t.Errorf("unexpected window %q..%q", q.Get("since"), q.Get("until"))
		}
		writeJSON(t, w, listing(server.URL,
			fakeCommit{"aaaaaaaaaaaa", "feat: add parser", "2025-07-18T10:00:00Z"},
			fakeCommit{"bbbbbbbbbbbb", "Quartz sync", "2025-07-18T11:00:00Z"},
			fakeCommit{"cccccccccccc", "fix: handle nil", "2025-07-17T09:00:00Z"},
		))
	})
	mux.HandleFunc("GET /repos/octocat/broken/commits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("GET /repos/octocat/empty/commits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	mux.HandleFunc("GET /repos/octocat/alpha/commits/aaaaaaaaaaaa", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"files": []map[string]any{
			{"filename": "parser.go", "status": "added", "additions": 40, "deletions": 0},
			{"filename": "Makefile", "status": "modified", "additions": 2, "deletions": 1},
		}})
	})
	mux.HandleFunc("GET /repos/octocat/alpha/commits/cccccccccccc", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(server, Config{
		FilterKeywords:   []string{"quartz", "sync"},
		ReadableMessages: true,
	})
	start := time.Date(2025, 7, 17, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC)
	set, err := client.DailyCommits(context.Background(), start, end)
	if err != nil {
		t.Fatalf("DailyCommits returned error: %v", err)
	}
	if set.Total() != 2 {
		t.Fatalf("expected 2 commits after filtering, got %d", set.Total())
	}

	day := set.For(end)
	if len(day) != 1 {
		t.Fatalf("expected one commit on 2025-07-18, got %d", len(day))
	}
	commit := day[0]
	if commit.Repo != "alpha" || commit.Readable != "Add parser" {
		t.Fatalf("unexpected commit: %+v", commit)
	}
	if commit.Stats == nil || commit.Stats.Additions != 42 || commit.Stats.Deletions != 1 {
		t.Fatalf("unexpected stats: %+v", commit.Stats)
	}
	if commit.Stats.Extensions[".go"] != 1 || commit.Stats.Extensions["no_extension"] != 1 {
		t.Fatalf("unexpected extensions: %v", commit.Stats.Extensions)
	}

	previous := set.For(start)
	if len(previous) != 1 || previous[0].Stats != nil {
		t.Fatalf("expected commit without details on 2025-07-17, got %+v", previous)
	}
}

func TestDailyCommitsRepoListingFailureIsFeedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server, Config{})
	day := time.Date(2025, 7, 18, 0, 0, 0, 0, time.UTC)
	_, err := client.DailyCommits(context.Background(), day, day)
	if !errors.Is(err, services.ErrFeed) {
		t.Fatalf("expected feed error, got %v", err)
	}
}

func TestDailyCommitsCapsPerDayAndUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("GET /users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]any{{"name": "alpha"}})
	})
	mux.HandleFunc("GET /repos/octocat/alpha/commits", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, listing(server.URL,
			fakeCommit{"111111111111", "one", "2025-07-19T01:00:00Z"},
			fakeCommit{"222222222222", "two", "2025-07-18T20:00:00Z"},
			fakeCommit{"333333333333", "three", "2025-07-18T15:00:00Z"},
		))
	})
	mux.HandleFunc("GET /repos/octocat/alpha/commits/{sha}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"files": []any{}})
	})

	client := newTestClient(server, Config{MaxCommitsPerDay: 2, Location: loc})
	day := time.Date(2025, 7, 18, 0, 0, 0, 0, loc)
	set, err := client.DailyCommits(context.Background(), day, day)
	if err != nil {
		t.Fatalf("DailyCommits returned error: %v", err)
	}
	commits := set.For(day)
	if len(commits) != 2 {
		t.Fatalf("expected cap of 2 commits, got %d", len(commits))
	}
	// 01:00Z on the 19th is 21:00 on the 18th in New York and is the newest.
	if commits[0].SHA != "111111111111" || commits[1].SHA != "222222222222" {
		t.Fatalf("unexpected order: %s, %s", commits[0].SHA, commits[1].SHA)
	}
	if commits[0].Readable != "" {
		t.Fatalf("expected raw messages when readable rewriting is off, got %q", commits[0].Readable)
	}
}

func TestDailyCommitsRequiresUsername(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.DailyCommits(context.Background(), time.Now(), time.Now())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestGetJSONRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(t, w, map[string]any{"login": "octocat"})
	}))
	defer server.Close()

	var slept []time.Duration
	client := NewClient(Config{BaseURL: server.URL, Token: "abc"}, WithRetryPolicy(retry.Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		MaxDelay:    time.Second,
		Sleeper:     func(d time.Duration) { slept = append(slept, d) },
	}))
	login, err := client.CheckAuth(context.Background())
	if err != nil {
		t.Fatalf("CheckAuth returned error: %v", err)
	}
	if login != "octocat" {
		t.Fatalf("unexpected login %q", login)
	}
	if len(slept) != 2 {
		t.Fatalf("expected two retry sleeps, got %v", slept)
	}
}

func TestCheckAuthRejectsBadToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer server.Close()

	client := newTestClient(server, Config{})
	_, err := client.CheckAuth(context.Background())
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected 401 error, got %v", err)
	}
}
