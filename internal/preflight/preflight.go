package preflight

import (
	"context"
	"strings"

	"daynote/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Vault directory (always checked; daynote never creates it)
	results = append(results, CheckDirectoryAccess("Vault directory", cfg.Paths.VaultDir))

	// State directory holds the lock and history database
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))

	results = append(results, CheckGitHub(ctx, cfg))

	if cfg.Render.AISummary {
		results = append(results, CheckLLM(ctx, "Summary LLM", cfg.GetLLM()))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

func equalLogin(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
