package config

const (
	defaultConfigPath           = "~/.config/daynote/config.toml"
	defaultNotesFolder          = "Calendar"
	defaultStateDir             = "~/.local/share/daynote"
	defaultLogDir               = "~/.local/share/daynote/logs"
	defaultLogRetentionDays     = 30
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultGitHubBaseURL        = "https://api.github.com"
	defaultGitHubTimeout        = 30
	defaultDaysToBackfill       = 30
	defaultMaxCommitsPerDay     = 10
	defaultTimezone             = "UTC"
	defaultMaxListedFiles       = 5
	defaultLLMBaseURL           = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel             = "google/gemini-3-flash-preview"
	defaultLLMReferer           = "https://github.com/daynote/daynote"
	defaultLLMTitle             = "daynote activity summary"
	defaultLLMTimeoutSeconds    = 60
	defaultNotifyRequestTimeout = 10
)

var defaultFilterKeywords = []string{"quartz", "sync", "update", "auto"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			NotesFolder: defaultNotesFolder,
			StateDir:    defaultStateDir,
			LogDir:      defaultLogDir,
		},
		GitHub: GitHub{
			BaseURL:           defaultGitHubBaseURL,
			TimeoutSeconds:    defaultGitHubTimeout,
			FilterSyncCommits: true,
			FilterKeywords:    append([]string(nil), defaultFilterKeywords...),
			ReadableMessages:  true,
		},
		Sync: Sync{
			DaysToBackfill:     defaultDaysToBackfill,
			MaxCommitsPerDay:   defaultMaxCommitsPerDay,
			Timezone:           defaultTimezone,
			CreateMissingNotes: true,
		},
		Render: Render{
			ShowCommitTime: true,
			MaxListedFiles: defaultMaxListedFiles,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Referer:        defaultLLMReferer,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Calendar: Calendar{
			Enabled: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Sync:           true,
			Cleanup:        true,
			Errors:         true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
