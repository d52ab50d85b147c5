package workflow

import (
	"errors"
	"fmt"
	"log/slog"

	"daynote/internal/calendar"
	"daynote/internal/config"
	"daynote/internal/github"
	"daynote/internal/history"
	"daynote/internal/notifications"
	"daynote/internal/render"
	"daynote/internal/services/llm"
	"daynote/internal/summary"
	"daynote/internal/vault"
)

// Runtime bundles a manager with the resources it owns.
type Runtime struct {
	Manager *Manager
	Vault   *vault.Vault
	History *history.Store
}

// NewRuntime wires the production collaborators described by cfg: the vault
// store, the GitHub feed, the renderer (with a cached AI summarizer when
// enabled), monthly calendars, run history, and ntfy.
func NewRuntime(cfg *config.Config, logger *slog.Logger, opts ...ManagerOption) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.New("workflow runtime: config required")
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	notes := vault.FromConfig(cfg)

	var keywords []string
	if cfg.GitHub.FilterSyncCommits {
		keywords = cfg.GitHub.FilterKeywords
	}
	feed := github.NewClient(github.Config{
		Token:            cfg.GitHub.Token,
		Username:         cfg.GitHub.Username,
		BaseURL:          cfg.GitHub.BaseURL,
		TimeoutSeconds:   cfg.GitHub.TimeoutSeconds,
		FilterKeywords:   keywords,
		ReadableMessages: cfg.GitHub.ReadableMessages,
		MaxCommitsPerDay: cfg.Sync.MaxCommitsPerDay,
		Location:         cfg.Location(),
	}, github.WithLogger(logger))

	renderOpts := render.Options{
		Brief:          cfg.Render.BriefFormat,
		ShowCommitTime: cfg.Render.ShowCommitTime,
		MaxListedFiles: cfg.Render.MaxListedFiles,
	}
	if cfg.Render.AISummary {
		llmCfg := cfg.GetLLM()
		client := llm.NewClient(llm.Config{
			APIKey:         llmCfg.APIKey,
			BaseURL:        llmCfg.BaseURL,
			Model:          llmCfg.Model,
			Referer:        llmCfg.Referer,
			Title:          llmCfg.Title,
			TimeoutSeconds: llmCfg.TimeoutSeconds,
		})
		renderOpts.Summarizer = summary.NewCached(client, store, client.Model(), cfg.LLM.Prompt, logger)
	}

	manager := NewManager(cfg, Dependencies{
		Store:    notes,
		Feed:     feed,
		Renderer: render.New(renderOpts, logger),
		Calendar: calendar.NewManager(notes, logger),
		History:  store,
		Notifier: notifications.NewService(cfg),
	}, logger, opts...)

	return &Runtime{Manager: manager, Vault: notes, History: store}, nil
}

// Close releases the history database.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	return r.History.Close()
}
