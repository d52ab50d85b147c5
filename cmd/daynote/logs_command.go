package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"daynote/internal/logging"
	"daynote/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var raw bool
	var filter logs.Filter

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Display the run log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			out := cmd.OutOrStdout()

			opts := logs.TailOptions{Offset: -1, Limit: lines}
			if !filter.Empty() {
				// Filtering needs the whole file; the limit applies afterwards.
				opts = logs.TailOptions{Offset: 0}
			}
			result, err := logs.Tail(cmd.Context(), path, opts)
			if err != nil {
				return err
			}
			printed := printLogLines(out, lastN(selectLines(result.Lines, filter), lines, !filter.Empty()), raw)
			if !follow {
				if printed == 0 {
					fmt.Fprintln(out, "No log entries")
				}
				return nil
			}

			offset := result.Offset
			for {
				next, err := logs.Tail(cmd.Context(), path, logs.TailOptions{Offset: offset, Follow: true, Wait: 5 * time.Second})
				if errors.Is(err, context.Canceled) {
					return nil
				}
				if err != nil {
					return err
				}
				printLogLines(out, selectLines(next.Lines, filter), raw)
				offset = next.Offset
			}
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show (0 shows none before following)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new entries")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print JSON records unmodified")
	cmd.Flags().StringVar(&filter.RunID, "run", "", "Only entries for this run ID (prefix allowed)")
	cmd.Flags().StringVar(&filter.Date, "date", "", "Only entries for this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.Level, "level", "", "Minimum level (debug, info, warn, error)")
	return cmd
}

func selectLines(lines []string, filter logs.Filter) []string {
	if filter.Empty() {
		return lines
	}
	var kept []string
	for _, line := range lines {
		if entry, ok := logs.Parse(line); ok && filter.Match(entry) {
			kept = append(kept, line)
		}
	}
	return kept
}

// lastN keeps the final n filtered lines. Unfiltered reads are already
// limited by Tail.
func lastN(lines []string, n int, filtered bool) []string {
	switch {
	case !filtered:
		return lines
	case n <= 0:
		return nil
	case len(lines) > n:
		return lines[len(lines)-n:]
	default:
		return lines
	}
}

func printLogLines(out io.Writer, lines []string, raw bool) int {
	for _, line := range lines {
		if !raw {
			if entry, ok := logs.Parse(line); ok {
				line = entry.Format()
			}
		}
		fmt.Fprintln(out, line)
	}
	return len(lines)
}
