package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"

	"daynote/internal/history"
	"daynote/internal/workflow"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 18
	statusIndent     = "  "
)

var statusTags = map[statusKind]struct{ tag, colour string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

// renderStatusLine formats "label: [TAG] message" with the label padded so
// tags line up. Only the tag is coloured.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusTags[kind]
	if !ok {
		style = statusTags[statusInfo]
	}
	tag := "[" + style.tag + "]"
	if colorize {
		tag = style.colour + tag + ansiReset
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", tag)
	if message != "" {
		line += " " + message
	}
	return line
}

// renderSectionHeader returns the title and an underline of equal width.
func renderSectionHeader(title string, colorize bool) []string {
	title = strings.TrimSpace(title)
	rule := strings.Repeat("─", utf8.RuneCountInString(title))
	if colorize {
		title = ansiBold + title + ansiReset
	}
	return []string{title, rule}
}

// statusForRun maps a recorded run status to a status kind and label.
func statusForRun(status history.Status) (statusKind, string) {
	switch status {
	case history.StatusSucceeded:
		return statusOK, "succeeded"
	case history.StatusPartial:
		return statusWarn, "partial"
	case history.StatusCancelled:
		return statusWarn, "cancelled"
	case history.StatusFailed:
		return statusError, "failed"
	case history.StatusRunning:
		return statusInfo, "running"
	default:
		return statusInfo, strings.ToLower(string(status))
	}
}

// outcomeColour colours per-date outcomes in report and history tables.
// Unchanged and skipped dates stay plain.
func outcomeColour(value string) string {
	switch workflow.Outcome(value) {
	case workflow.OutcomeCreated:
		return ansiGreen
	case workflow.OutcomeUpdated:
		return ansiBlue
	case workflow.OutcomeRetracted:
		return ansiYellow
	case workflow.OutcomeFailed:
		return ansiRed
	default:
		return ""
	}
}

// runStatusColour colours the status column of the run list.
func runStatusColour(value string) string {
	kind, _ := statusForRun(history.Status(value))
	if kind == statusInfo {
		return ""
	}
	return statusTags[kind].colour
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
