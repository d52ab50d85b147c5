package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. GitHub credentials are checked
// separately by RequireGitHub.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return ensurePositiveMap(map[string]int{
		"github.timeout_seconds":        c.GitHub.TimeoutSeconds,
		"llm.timeout_seconds":           c.LLM.TimeoutSeconds,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	})
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.VaultDir) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("paths.vault_dir is required. Set OBSIDIAN_VAULT_PATH env var or edit %s (create with 'daynote config init')", defaultPath)
	}
	if strings.Contains(c.Paths.NotesFolder, "..") {
		return errors.New("paths.notes_folder must stay inside the vault")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.DaysToBackfill < 1 {
		return errors.New("sync.days_to_backfill must be >= 1")
	}
	if c.Sync.MaxCommitsPerDay < 1 {
		return errors.New("sync.max_commits_per_day must be >= 1")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.MaxListedFiles < 0 {
		return errors.New("render.max_listed_files must be >= 0")
	}
	if c.Render.AISummary && strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm.api_key must be set when render.ai_summary is true (or set OPENROUTER_API_KEY)")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
