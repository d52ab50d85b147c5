package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"daynote/internal/note"
	"daynote/internal/vault"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var activityOnly bool

	cmd := &cobra.Command{
		Use:   "show [DATE]",
		Short: "Print the daily note for a date (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			value := "today"
			if len(args) == 1 {
				value = args[0]
			}
			date, err := parseDate(value, ctx.now(), cfg.Location())
			if err != nil {
				return err
			}

			notes := vault.FromConfig(cfg)
			path := notes.Path(date)
			doc, exists, err := notes.Read(date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !exists {
				return fmt.Errorf("no daily note at %s", path)
			}

			fmt.Fprintf(out, "# %s\n\n", path)
			if !activityOnly {
				text := doc.String()
				fmt.Fprint(out, text)
				if !strings.HasSuffix(text, "\n") {
					fmt.Fprintln(out)
				}
				return nil
			}

			region := note.ActivitySection.Locate(doc)
			if !region.Found() {
				fmt.Fprintln(out, "No activity section")
				return nil
			}
			for _, line := range doc.Slice(region.Start, region.End) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&activityOnly, "activity", "a", false, "Print only the GitHub activity section")
	return cmd
}
