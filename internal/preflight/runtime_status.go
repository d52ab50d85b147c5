package preflight

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"daynote/internal/config"
)

// GitHubStatus evaluates GitHub status from config and connectivity.
func GitHubStatus(ctx context.Context, cfg *config.Config) Result {
	const name = "GitHub"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if strings.TrimSpace(cfg.GitHub.Username) == "" {
		return Result{Name: name, Detail: "Missing username"}
	}
	if strings.TrimSpace(cfg.GitHub.Token) == "" {
		return Result{Name: name, Detail: "Missing token"}
	}
	return CheckGitHub(ctx, cfg)
}

// LLMStatus evaluates the summary LLM status from config and connectivity.
func LLMStatus(ctx context.Context, cfg *config.Config) Result {
	const name = "Summary LLM"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if !cfg.Render.AISummary {
		return Result{Name: name, Passed: true, Detail: "Disabled"}
	}
	return CheckLLM(ctx, name, cfg.GetLLM())
}

// VaultProbe reports what lives under the notes root.
type VaultProbe struct {
	Root       string
	Exists     bool
	DailyNotes int
	MonthNotes int
}

// ProbeVault counts daily and month notes under root. Unreadable
// subdirectories are skipped.
func ProbeVault(root string) VaultProbe {
	probe := VaultProbe{Root: root}
	root = strings.TrimSpace(root)
	if root == "" {
		return probe
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return fs.SkipDir
		}
		if path == root {
			probe.Exists = true
			return nil
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".md" {
			return nil
		}
		if isDailyNoteName(d.Name()) {
			probe.DailyNotes++
		} else if strings.TrimSuffix(d.Name(), ".md") == filepath.Base(filepath.Dir(path)) {
			probe.MonthNotes++
		}
		return nil
	})
	return probe
}

// isDailyNoteName matches DD-MM-YYYY.md.
func isDailyNoteName(name string) bool {
	stem := strings.TrimSuffix(name, ".md")
	if len(stem) != len("02-01-2006") {
		return false
	}
	for i, r := range stem {
		switch i {
		case 2, 5:
			if r != '-' {
				return false
			}
		default:
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// Detail renders a display-friendly summary for status output.
func (p VaultProbe) Detail() string {
	if !p.Exists {
		return fmt.Sprintf("%s (not found)", p.Root)
	}
	return fmt.Sprintf("%s (%d daily notes, %d month notes)", p.Root, p.DailyNotes, p.MonthNotes)
}
