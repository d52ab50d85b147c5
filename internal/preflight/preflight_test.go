package preflight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"daynote/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func githubServer(t *testing.T, token, login string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "token "+token {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"login": login})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func githubConfig(baseURL, token string) *config.Config {
	cfg := config.Default()
	cfg.GitHub.BaseURL = baseURL
	cfg.GitHub.Token = token
	cfg.GitHub.Username = "octocat"
	return &cfg
}

func TestCheckGitHub_OK(t *testing.T) {
	srv := githubServer(t, "good", "octocat")
	result := CheckGitHub(context.Background(), githubConfig(srv.URL, "good"))
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result.Detail != "authenticated as octocat" {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckGitHub_OtherLogin(t *testing.T) {
	srv := githubServer(t, "good", "hubot")
	result := CheckGitHub(context.Background(), githubConfig(srv.URL, "good"))
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "hubot") {
		t.Fatalf("expected detail to name token owner, got %q", result.Detail)
	}
}

func TestCheckGitHub_BadToken(t *testing.T) {
	srv := githubServer(t, "good", "octocat")
	result := CheckGitHub(context.Background(), githubConfig(srv.URL, "bad"))
	if result.Passed {
		t.Fatal("expected failure for bad token")
	}
	if !strings.Contains(result.Detail, "invalid token") {
		t.Fatalf("unexpected detail: %q", result.Detail)
	}
}

func TestCheckGitHub_MissingCredentials(t *testing.T) {
	cfg := config.Default()
	result := CheckGitHub(context.Background(), &cfg)
	if result.Passed {
		t.Fatal("expected failure for missing credentials")
	}
}

func TestGitHubStatus_MissingToken(t *testing.T) {
	cfg := config.Default()
	cfg.GitHub.Username = "octocat"
	result := GitHubStatus(context.Background(), &cfg)
	if result.Passed || result.Detail != "Missing token" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestCheckLLM_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": `{"ok":true}`}}},
		})
	}))
	defer srv.Close()

	result := CheckLLM(context.Background(), "LLM", config.LLMConfig{APIKey: "key", BaseURL: srv.URL, Model: "demo"})
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckLLM_MissingKey(t *testing.T) {
	result := CheckLLM(context.Background(), "LLM", config.LLMConfig{})
	if result.Passed || result.Detail != "API key missing" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestLLMStatus_Disabled(t *testing.T) {
	cfg := config.Default()
	result := LLMStatus(context.Background(), &cfg)
	if !result.Passed || result.Detail != "Disabled" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	srv := githubServer(t, "good", "octocat")
	cfg := githubConfig(srv.URL, "good")
	cfg.Paths.VaultDir = t.TempDir()
	cfg.Paths.StateDir = t.TempDir()

	results := RunAll(context.Background(), cfg)
	// vault + state + github
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAll_IncludesLLMWhenSummaryEnabled(t *testing.T) {
	srv := githubServer(t, "good", "octocat")
	cfg := githubConfig(srv.URL, "good")
	cfg.Paths.VaultDir = t.TempDir()
	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "missing")
	cfg.Render.AISummary = true
	cfg.LLM.APIKey = ""

	results := RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	failed := Failed(results)
	if len(failed) != 2 {
		t.Fatalf("expected state dir and LLM to fail, got %+v", failed)
	}
	if failed[0].Name != "State directory" || failed[1].Name != "Summary LLM" {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestProbeVault(t *testing.T) {
	root := t.TempDir()
	month := filepath.Join(root, "2025", "July")
	if err := os.MkdirAll(month, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"01-07-2025.md", "02-07-2025.md", "July.md", "scratch.md", "03-07-2025.txt"} {
		if err := os.WriteFile(filepath.Join(month, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	probe := ProbeVault(root)
	if !probe.Exists || probe.DailyNotes != 2 || probe.MonthNotes != 1 {
		t.Fatalf("unexpected probe: %+v", probe)
	}
	if !strings.Contains(probe.Detail(), "2 daily notes") {
		t.Fatalf("unexpected detail: %q", probe.Detail())
	}

	missing := ProbeVault(filepath.Join(root, "nope"))
	if missing.Exists {
		t.Fatalf("expected missing root, got %+v", missing)
	}
}
