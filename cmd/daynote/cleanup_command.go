package main

import (
	"context"

	"github.com/spf13/cobra"

	"daynote/internal/config"
	"daynote/internal/workflow"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	var flags rangeFlags
	var opts runFlags

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Normalize activity sections without contacting GitHub",
		Long: "Walk the date range and rewrite each activity section into its canonical\n" +
			"form. Placeholder-only sections are retracted and missing notes are\n" +
			"created with an empty activity section.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, rt *workflow.Runtime) error {
				start, end, err := flags.resolve(cfg, ctx.now())
				if err != nil {
					return err
				}
				return runDates(cmd, "cleanup", start, end, opts, func(c context.Context, opts workflow.RunOptions) (workflow.Report, error) {
					return rt.Manager.Cleanup(c, start, end, opts)
				})
			})
		},
	}

	flags.register(cmd)
	opts.register(cmd)
	return cmd
}
