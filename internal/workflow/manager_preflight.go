package workflow

import (
	"fmt"
	"log/slog"
	"strings"

	"daynote/internal/logging"
	"daynote/internal/preflight"
	"daynote/internal/services"
)

// runPreflightChecks validates that the vault is usable before any note is
// touched. Remote services are not probed here; the feed fetch surfaces
// their failures on its own.
func (m *Manager) runPreflightChecks(logger *slog.Logger) error {
	if m.cfg == nil {
		return nil
	}
	results := []preflight.Result{
		preflight.CheckDirectoryAccess("Vault directory", m.cfg.Paths.VaultDir),
	}

	var failures []string
	for _, r := range results {
		if r.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", r.Name),
				logging.String("detail", r.Detail),
				logging.String(logging.FieldEventType, "preflight_passed"),
			)
			continue
		}
		logger.Error("preflight check failed",
			logging.String("check", r.Name),
			logging.String("detail", r.Detail),
			logging.String(logging.FieldEventType, "preflight_failed"),
			logging.String(logging.FieldErrorHint, "set paths.vault_dir to an existing, writable Obsidian vault"),
		)
		failures = append(failures, fmt.Sprintf("%s: %s", r.Name, r.Detail))
	}

	if len(failures) > 0 {
		return services.Wrap(services.ErrConfiguration, "workflow", "preflight", strings.Join(failures, "; "), nil)
	}
	return nil
}
