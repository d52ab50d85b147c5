package main

import (
	"context"

	"github.com/spf13/cobra"

	"daynote/internal/config"
	"daynote/internal/workflow"
)

func newCalendarCommand(ctx *commandContext) *cobra.Command {
	var flags rangeFlags
	var opts runFlags
	var stripQuickLinks bool

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Create monthly calendar notes for the months in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, rt *workflow.Runtime) error {
				start, end, err := flags.resolve(cfg, ctx.now())
				if err != nil {
					return err
				}
				return runDates(cmd, "calendar", start, end, opts, func(c context.Context, opts workflow.RunOptions) (workflow.Report, error) {
					return rt.Manager.Calendar(c, start, end, stripQuickLinks, opts)
				})
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&stripQuickLinks, "strip-quick-links", false, "Remove the quick links section from existing month notes")
	opts.register(cmd)
	return cmd
}
