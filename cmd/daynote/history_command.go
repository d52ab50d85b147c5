package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"daynote/internal/history"
)

const shortIDLength = 8

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "List recent runs, or the per-date outcomes of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				runs, err := store.RecentRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(args) == 0 {
					if asJSON {
						if runs == nil {
							runs = []history.Run{}
						}
						return writeJSON(cmd, runs)
					}
					printRuns(cmd, runs, ctx.now())
					return nil
				}

				run, err := findRun(cmd, store, args[0])
				if err != nil {
					return err
				}
				days, err := store.RunDays(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if asJSON {
					if days == nil {
						days = []history.Day{}
					}
					return writeJSON(cmd, struct {
						Run  history.Run   `json:"run"`
						Days []history.Day `json:"days"`
					}{run, days})
				}
				printRunDays(cmd, run, days)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than the given number of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return errors.New("--days must be at least 1")
			}
			return ctx.withHistory(func(store *history.Store) error {
				cutoff := ctx.now().AddDate(0, 0, -days)
				removed, err := store.PruneRuns(cmd.Context(), cutoff)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s older than %s\n",
					plural(int(removed), "run", "runs"), cutoff.Format("2006-01-02"))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 90, "Keep runs started within this many days")
	return cmd
}

// findRun resolves a full run ID or a unique prefix of one.
func findRun(cmd *cobra.Command, store *history.Store, id string) (history.Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return history.Run{}, errors.New("run id required")
	}
	runs, err := store.RecentRuns(cmd.Context(), 1000)
	if err != nil {
		return history.Run{}, err
	}
	var matches []history.Run
	for _, run := range runs {
		if run.ID == id {
			return run, nil
		}
		if strings.HasPrefix(run.ID, id) {
			matches = append(matches, run)
		}
	}
	switch len(matches) {
	case 0:
		return history.Run{}, fmt.Errorf("run %s not found", id)
	case 1:
		return matches[0], nil
	default:
		return history.Run{}, fmt.Errorf("run id %s is ambiguous (%d matches)", id, len(matches))
	}
}

func printRuns(cmd *cobra.Command, runs []history.Run, now time.Time) {
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		kind := string(run.Kind)
		if run.DryRun {
			kind += " (dry-run)"
		}
		rows = append(rows, []string{
			shortID(run.ID),
			kind,
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			runRange(run),
			string(run.Status),
			strconv.Itoa(run.Counts.Changed()),
			strconv.Itoa(run.Counts.Failed),
			durationText(run.Duration()),
		})
	}
	fmt.Fprintln(out, renderTable(runColumns, rows, shouldColorize(out)))
}

var runColumns = []tableColumn{
	{Title: "ID"},
	{Title: "Kind"},
	{Title: "Started"},
	{Title: "Range"},
	{Title: "Status", Colour: runStatusColour},
	{Title: "Changed", Align: alignRight},
	{Title: "Failed", Align: alignRight},
	{Title: "Duration", Align: alignRight},
}

func printRunDays(cmd *cobra.Command, run history.Run, days []history.Day) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s: %s %s, %s\n", run.ID, run.Kind, runRange(run), run.Status)
	if run.Error != "" {
		fmt.Fprintf(out, "Error: %s\n", run.Error)
	}
	if len(days) == 0 {
		fmt.Fprintln(out, "No dates recorded")
		return
	}
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		rows = append(rows, []string{day.Day, day.Outcome, strconv.Itoa(day.Commits), day.Error})
	}
	fmt.Fprintln(out, renderTable(dayColumns, rows, shouldColorize(out)))
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func runRange(run history.Run) string {
	if run.RangeStart == run.RangeEnd {
		return run.RangeStart
	}
	return run.RangeStart + ".." + run.RangeEnd
}

func durationText(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(time.Millisecond).String()
}
