package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"daynote/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The vault and state directories exist; notes, logs, and the history
// database do not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.VaultDir = filepath.Join(base, "vault")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.GitHub.Token = "test-token"
	cfgVal.GitHub.Username = "octocat"
	cfgVal.Notifications.NtfyTopic = ""

	for _, dir := range []string{cfgVal.Paths.VaultDir, cfgVal.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithGitHubAPI points the feed client at baseURL, typically an httptest server.
func WithGitHubAPI(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.GitHub.BaseURL = baseURL
	}
}

// WithTimezone overrides the day-bucketing timezone.
func WithTimezone(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sync.Timezone = name
	}
}

// WithAISummary enables AI summaries against an LLM endpoint.
func WithAISummary(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Render.AISummary = true
		b.cfg.LLM.APIKey = "test-llm"
		b.cfg.LLM.BaseURL = baseURL
	}
}

// WithCalendar toggles monthly calendar notes.
func WithCalendar(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Calendar.Enabled = enabled
	}
}

// WithNtfyTopic points notifications at topic, typically an httptest server.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
