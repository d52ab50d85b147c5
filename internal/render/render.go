package render

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"daynote/internal/activity"
	"daynote/internal/logging"
	"daynote/internal/note"
	"daynote/internal/services"
)

// AISummaryHeader introduces the optional summary paragraph.
const AISummaryHeader = "### 🤖 AI Summary"

// Summarizer produces a short prose summary of a day's commits.
type Summarizer interface {
	Summarize(ctx context.Context, date time.Time, commits []activity.Commit) (string, error)
}

// Options carries every toggle that affects the rendered block.
type Options struct {
	// Brief renders each commit as compact <small> lines.
	Brief bool
	// ShowCommitTime appends a rough effort estimate to brief commits.
	ShowCommitTime bool
	// MaxListedFiles lists individual files when a commit touches at most
	// this many. Zero disables the list.
	MaxListedFiles int
	// Summarizer adds an AI summary when non-nil.
	Summarizer Summarizer
}

// Renderer builds activity blocks.
type Renderer struct {
	opts    Options
	section note.Section
	logger  *slog.Logger
}

// New constructs a renderer for the activity section.
func New(opts Options, logger *slog.Logger) *Renderer {
	return &Renderer{
		opts:    opts,
		section: note.ActivitySection,
		logger:  logging.NewComponentLogger(logger, "render"),
	}
}

// Render returns the block for date. No commits yields the empty block.
func (r *Renderer) Render(ctx context.Context, date time.Time, commits []activity.Commit) (note.Block, error) {
	if len(commits) == 0 {
		return note.Block{}, nil
	}
	lines := []string{r.section.Marker, ""}
	lines = append(lines, r.summaryLines(ctx, date, commits)...)

	totals := activity.Summarize(commits)
	lines = append(lines, fmt.Sprintf("**Summary:** %d commits across %d repositories", totals.Commits, totals.Repos))
	if totals.Additions > 0 || totals.Deletions > 0 {
		lines = append(lines, fmt.Sprintf("**Changes:** +%d -%d lines", totals.Additions, totals.Deletions))
	}
	lines = append(lines, "")

	for _, commit := range commits {
		if r.opts.Brief {
			lines = append(lines, r.briefCommit(commit)...)
		} else {
			lines = append(lines, r.detailedCommit(commit)...)
		}
		lines = append(lines, "")
	}

	block, err := r.section.NewBlock(lines...)
	if err != nil {
		return note.Block{}, services.Wrap(services.ErrRender, "render", "build block", date.Format(activity.KeyLayout), err)
	}
	return block, nil
}

func (r *Renderer) summaryLines(ctx context.Context, date time.Time, commits []activity.Commit) []string {
	if r.opts.Summarizer == nil {
		return nil
	}
	summary, err := r.opts.Summarizer.Summarize(ctx, date, commits)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "ai summary unavailable", "render_summary_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "activity block rendered without AI summary"),
			logging.String(logging.FieldErrorHint, "check llm.api_key and llm.model"),
		)
		return nil
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil
	}
	lines := []string{AISummaryHeader}
	for _, line := range strings.Split(strings.ReplaceAll(summary, "\r\n", "\n"), "\n") {
		lines = append(lines, escapeHeader(line))
	}
	return append(lines, "")
}

func (r *Renderer) detailedCommit(c activity.Commit) []string {
	lines := []string{
		fmt.Sprintf("### [%s](%s) - %s", c.Repo, c.URL, c.ShortSHA()),
		fmt.Sprintf("**%s**", messageLine(c)),
	}
	if c.Stats == nil {
		return lines
	}
	lines = append(lines, fmt.Sprintf("- Files changed: %d", c.Stats.TotalFiles()))
	if c.Stats.Additions > 0 {
		lines = append(lines, fmt.Sprintf("- Additions: +%d", c.Stats.Additions))
	}
	if c.Stats.Deletions > 0 {
		lines = append(lines, fmt.Sprintf("- Deletions: -%d", c.Stats.Deletions))
	}
	if types := fileTypes(c.Stats, " files"); len(types) > 0 {
		lines = append(lines, "- File types: "+strings.Join(types, ", "))
	}
	if n := len(c.Stats.Files); n > 0 && n <= r.opts.MaxListedFiles {
		lines = append(lines, "- Files:")
		for _, file := range c.Stats.Files {
			lines = append(lines, fmt.Sprintf("  - %s %s%s", statusEmoji(file.Status), singleLine(file.Filename), changeSuffix(file)))
		}
	}
	return lines
}

func (r *Renderer) briefCommit(c activity.Commit) []string {
	estimate := ""
	if r.opts.ShowCommitTime {
		estimate = " (" + EstimateEffort(c.Stats) + ")"
	}
	lines := []string{
		fmt.Sprintf("<small>**[%s](%s)** - %s%s</small>", c.Repo, c.URL, c.ShortSHA(), estimate),
		fmt.Sprintf("<small>%s</small>", messageLine(c)),
	}
	if c.Stats == nil {
		return lines
	}
	var parts []string
	if n := c.Stats.TotalFiles(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d files", n))
	}
	if c.Stats.Additions > 0 {
		parts = append(parts, fmt.Sprintf("+%d", c.Stats.Additions))
	}
	if c.Stats.Deletions > 0 {
		parts = append(parts, fmt.Sprintf("-%d", c.Stats.Deletions))
	}
	types := fileTypes(c.Stats, "")
	if len(types) > 2 {
		types = types[:2]
	}
	parts = append(parts, types...)
	if len(parts) > 0 {
		lines = append(lines, fmt.Sprintf("<small>📄 %s</small>", strings.Join(parts, ", ")))
	}
	return lines
}

// EstimateEffort guesses the time spent on a commit from its line changes.
func EstimateEffort(stats *activity.Stats) string {
	changes := 0
	if stats != nil {
		changes = stats.Additions + stats.Deletions
	}
	switch {
	case changes == 0:
		return "~5 min"
	case changes < 50:
		return "~15 min"
	case changes < 200:
		return "~30 min"
	case changes < 500:
		return "~1 hour"
	default:
		return "~2+ hours"
	}
}

// fileTypes lists "count ext<suffix>" entries sorted by extension; files
// without an extension read "count files".
func fileTypes(stats *activity.Stats, suffix string) []string {
	exts := make([]string, 0, len(stats.Extensions))
	for ext := range stats.Extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		count := stats.Extensions[ext]
		if ext == activity.NoExtension {
			out = append(out, fmt.Sprintf("%d files", count))
			continue
		}
		out = append(out, fmt.Sprintf("%d %s%s", count, ext, suffix))
	}
	return out
}

func statusEmoji(status string) string {
	switch status {
	case "added":
		return "➕"
	case "modified":
		return "✏️"
	case "removed":
		return "🗑️"
	case "renamed":
		return "🔄"
	default:
		return "📄"
	}
}

func changeSuffix(file activity.FileChange) string {
	var parts []string
	if file.Additions > 0 {
		parts = append(parts, fmt.Sprintf("+%d", file.Additions))
	}
	if file.Deletions > 0 {
		parts = append(parts, fmt.Sprintf("-%d", file.Deletions))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// messageLine returns the first line of the commit's display message.
func messageLine(c activity.Commit) string {
	message := c.DisplayMessage()
	if idx := strings.IndexAny(message, "\r\n"); idx >= 0 {
		message = strings.TrimSpace(message[:idx])
	}
	return message
}

func singleLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// escapeHeader keeps untrusted text from reading as a markdown header.
func escapeHeader(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return `\` + trimmed
	}
	return line
}
