package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains vault and state directory configuration.
type Paths struct {
	VaultDir    string `toml:"vault_dir"`
	NotesFolder string `toml:"notes_folder"`
	StateDir    string `toml:"state_dir"`
	LogDir      string `toml:"log_dir"`
}

// GitHub contains configuration for the commit activity feed.
type GitHub struct {
	Token             string   `toml:"token"`
	Username          string   `toml:"username"`
	BaseURL           string   `toml:"base_url"`
	TimeoutSeconds    int      `toml:"timeout_seconds"`
	FilterSyncCommits bool     `toml:"filter_sync_commits"`
	FilterKeywords    []string `toml:"filter_keywords"`
	ReadableMessages  bool     `toml:"readable_messages"`
}

// Sync contains configuration for date-range synchronisation.
type Sync struct {
	DaysToBackfill       int    `toml:"days_to_backfill"`
	MaxCommitsPerDay     int    `toml:"max_commits_per_day"`
	Timezone             string `toml:"timezone"`
	CreateMissingNotes   bool   `toml:"create_missing_notes"`
	RetractOnRenderError bool   `toml:"retract_on_render_error"`
}

// Render contains configuration for the activity block layout.
type Render struct {
	BriefFormat    bool `toml:"brief_format"`
	ShowCommitTime bool `toml:"show_commit_time"`
	MaxListedFiles int  `toml:"max_listed_files"`
	AISummary      bool `toml:"ai_summary"`
}

// LLM contains connection settings for daily activity summaries.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Prompt         string `toml:"prompt"`
}

// Calendar contains configuration for monthly calendar notes.
type Calendar struct {
	Enabled bool `toml:"enabled"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Sync           bool   `toml:"sync"`
	Cleanup        bool   `toml:"cleanup"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for daynote.
//
// Configuration sections by subsystem:
//   - Paths: vault location, notes folder, state and log directories
//   - GitHub: commit feed credentials and filtering
//   - Sync: backfill window, per-day caps, timezone, failure policy
//   - Render: activity block layout
//   - LLM: optional AI summaries
//   - Calendar: monthly calendar notes
//   - Notifications: ntfy push notification settings
//   - Logging: log format, level, and retention
type Config struct {
	Paths         Paths         `toml:"paths"`
	GitHub        GitHub        `toml:"github"`
	Sync          Sync          `toml:"sync"`
	Render        Render        `toml:"render"`
	LLM           LLM           `toml:"llm"`
	Calendar      Calendar      `toml:"calendar"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`

	location *time.Location
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("daynote.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories. The vault itself
// is never created here; a missing vault is a preflight failure.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// NotesRoot returns the directory holding the daily notes tree.
func (c *Config) NotesRoot() string {
	return filepath.Join(c.Paths.VaultDir, c.Paths.NotesFolder)
}

// LockPath returns the single-writer lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "daynote.lock")
}

// HistoryPath returns the run history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// Location returns the timezone used to bucket commits into calendar days.
func (c *Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	if loc, err := time.LoadLocation(c.Sync.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

// RequireGitHub reports whether the activity feed credentials are present.
// Commands that never contact GitHub skip this check.
func (c *Config) RequireGitHub() error {
	var missing []string
	if strings.TrimSpace(c.GitHub.Token) == "" {
		missing = append(missing, "github.token (GITHUB_TOKEN)")
	}
	if strings.TrimSpace(c.GitHub.Username) == "" {
		missing = append(missing, "github.username (GITHUB_USERNAME)")
	}
	if len(missing) == 0 {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("%s required. Set the env vars or edit %s (create with 'daynote config init')", strings.Join(missing, " and "), defaultPath)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the resolved LLM connection settings.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// GetLLM returns the LLM connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}
