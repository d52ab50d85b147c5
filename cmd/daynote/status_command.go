package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"daynote/internal/history"
	"daynote/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show configuration, vault, and service status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			var lines []string

			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configKind, configMsg := statusOK, ctx.configPath
			if !ctx.configExists {
				configKind, configMsg = statusWarn, ctx.configPath+" (not found, using defaults and environment)"
			}
			lines = append(lines,
				renderStatusLine("Config", configKind, configMsg, colorize),
				renderStatusLine("Timezone", statusInfo, cfg.Location().String(), colorize),
				renderStatusLine("Monthly calendar", statusInfo, yesNo(cfg.Calendar.Enabled), colorize),
				renderStatusLine("AI summary", statusInfo, yesNo(cfg.Render.AISummary), colorize),
			)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Vault", colorize)...)
			probe := preflight.ProbeVault(cfg.NotesRoot())
			vaultKind := statusOK
			if !probe.Exists {
				vaultKind = statusWarn
			}
			lines = append(lines,
				renderStatusLine("Notes", vaultKind, probe.Detail(), colorize),
				checkLine(preflight.CheckDirectoryAccess("State directory", cfg.Paths.StateDir), colorize),
			)

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Services", colorize)...)
			if offline {
				lines = append(lines,
					renderStatusLine("GitHub", statusInfo, "not checked (--offline)", colorize),
					renderStatusLine("Summary LLM", statusInfo, "not checked (--offline)", colorize),
				)
			} else {
				lines = append(lines,
					checkLine(preflight.GitHubStatus(cmd.Context(), cfg), colorize),
					checkLine(preflight.LLMStatus(cmd.Context(), cfg), colorize),
				)
			}
			ntfyKind, ntfyMsg := statusInfo, "not configured"
			if topic := strings.TrimSpace(cfg.Notifications.NtfyTopic); topic != "" {
				ntfyKind, ntfyMsg = statusOK, topic
			}
			lines = append(lines, renderStatusLine("Notifications", ntfyKind, ntfyMsg, colorize))

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Runs", colorize)...)
			err = ctx.withHistory(func(store *history.Store) error {
				for _, kind := range []history.Kind{history.KindSync, history.KindCleanup, history.KindCalendar} {
					run, ok, err := store.LastRun(cmd.Context(), kind)
					if err != nil {
						return err
					}
					label := "Last " + string(kind)
					if !ok {
						lines = append(lines, renderStatusLine(label, statusInfo, "never", colorize))
						continue
					}
					kindStatus, statusText := statusForRun(run.Status)
					msg := fmt.Sprintf("%s %s, %d changed, %d failed (%s)",
						statusText,
						runRange(run),
						run.Counts.Changed(),
						run.Counts.Failed,
						humanize.RelTime(run.StartedAt, ctx.now(), "ago", "from now"),
					)
					lines = append(lines, renderStatusLine(label, kindStatus, msg, colorize))
				}
				return nil
			})
			if err != nil {
				lines = append(lines, renderStatusLine("History", statusError, err.Error(), colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip GitHub and LLM connectivity checks")
	return cmd
}

func checkLine(result preflight.Result, colorize bool) string {
	kind := statusOK
	switch {
	case !result.Passed:
		kind = statusError
	case result.Detail == "Disabled":
		kind = statusInfo
	}
	return renderStatusLine(result.Name, kind, result.Detail, colorize)
}
