package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"daynote/internal/activity"
	"daynote/internal/workflow"
)

// newProgress returns a per-date callback that drives a progress bar on
// interactive terminals. Non-terminal output gets no callback.
func newProgress(out io.Writer, label string, total int) (func(workflow.DayResult, int, int), func()) {
	if total <= 1 || !shouldColorize(out) {
		return nil, func() {}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	update := func(res workflow.DayResult, done, _ int) {
		bar.Describe(fmt.Sprintf("%s %s", label, activity.Key(res.Date)))
		_ = bar.Set(done)
	}
	return update, func() { _ = bar.Finish() }
}
