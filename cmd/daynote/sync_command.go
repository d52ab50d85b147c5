package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"daynote/internal/activity"
	"daynote/internal/config"
	"daynote/internal/workflow"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var flags rangeFlags
	var opts runFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Merge GitHub activity into the daily notes of a date range",
		Long: "Fetch commit activity for each date in the range and merge it into the\n" +
			"activity section of the matching daily note. Other sections are never\n" +
			"touched. Dates without commits have their activity section retracted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, rt *workflow.Runtime) error {
				if err := cfg.RequireGitHub(); err != nil {
					return err
				}
				start, end, err := flags.resolve(cfg, ctx.now())
				if err != nil {
					return err
				}
				return runDates(cmd, "sync", start, end, opts, func(c context.Context, opts workflow.RunOptions) (workflow.Report, error) {
					return rt.Manager.Sync(c, start, end, opts)
				})
			})
		},
	}

	flags.register(cmd)
	opts.register(cmd)
	return cmd
}

func newTodayCommand(ctx *commandContext) *cobra.Command {
	var opts runFlags

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Merge today's GitHub activity into today's daily note",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, rt *workflow.Runtime) error {
				if err := cfg.RequireGitHub(); err != nil {
					return err
				}
				today := activity.Day(ctx.now(), cfg.Location())
				return runDates(cmd, "sync", today, today, opts, rt.Manager.Today)
			})
		},
	}

	opts.register(cmd)
	return cmd
}

// runFlags are shared by every command that drives a date-range run.
type runFlags struct {
	dryRun bool
	json   bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "Report what would change without writing notes")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the run report as JSON")
}

// runDates drives one date-range run with a progress bar and prints the
// report. With --json the bar moves to stderr so stdout carries only the
// report. A run where some dates failed exits non-zero.
func runDates(cmd *cobra.Command, label string, start, end time.Time, flags runFlags, run func(context.Context, workflow.RunOptions) (workflow.Report, error)) error {
	out := cmd.OutOrStdout()
	barOut := out
	if flags.json {
		barOut = cmd.ErrOrStderr()
	}
	progress, finish := newProgress(barOut, label, len(activity.Range(start, end)))
	report, err := run(cmd.Context(), workflow.RunOptions{DryRun: flags.dryRun, Progress: progress})
	finish()
	if report.RunID != "" && (err == nil || len(report.Days) > 0) {
		if flags.json {
			if jerr := writeJSON(cmd, newReportJSON(report)); jerr != nil {
				return jerr
			}
		} else {
			printReport(out, report)
		}
	}
	if err != nil {
		return err
	}
	if failed := report.Counts.Failed; failed > 0 {
		return fmt.Errorf("%s: %s failed (see log for details)", label, plural(failed, "date", "dates"))
	}
	return nil
}
