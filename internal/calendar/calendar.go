package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"daynote/internal/logging"
	"daynote/internal/note"
)

const summaryPlaceholder = "*GitHub activity and notes will be added here.*"

var (
	// ViewSection is the generated month table.
	ViewSection = note.Section{Marker: "## 📅 Calendar View", HeaderPrefix: note.SiblingHeaderPrefix}
	// SummarySection holds the monthly summary placeholder.
	SummarySection = note.Section{Marker: "## 📊 Monthly Summary", HeaderPrefix: note.SiblingHeaderPrefix, Placeholder: summaryPlaceholder}
	// QuickLinksSection is a legacy section removed by StripQuickLinks.
	QuickLinksSection = note.Section{Marker: "## 🔗 Quick Links", HeaderPrefix: note.SiblingHeaderPrefix}
)

// Store reads and writes notes by path.
type Store interface {
	MonthPath(month time.Time) string
	ReadFile(path string) (note.Document, bool, error)
	WriteFile(path string, doc note.Document) error
}

// Manager creates and maintains month notes.
type Manager struct {
	store  Store
	logger *slog.Logger
}

// NewManager constructs a calendar manager.
func NewManager(store Store, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logging.NewComponentLogger(logger, "calendar")}
}

// Ensure creates the note for month when it does not exist. It reports
// whether a note was (or, in dry-run mode, would be) created.
func (m *Manager) Ensure(month time.Time, dryRun bool) (bool, error) {
	month = firstOfMonth(month)
	path := m.store.MonthPath(month)
	if _, ok, err := m.store.ReadFile(path); err != nil || ok {
		return false, err
	}
	doc, template, err := m.build(month)
	if err != nil {
		return false, err
	}
	if !dryRun {
		if err := m.store.WriteFile(path, doc); err != nil {
			return false, err
		}
	}
	m.logger.Info("month note created",
		logging.String("month", month.Format("2006-01")),
		logging.String("template", template),
		logging.Bool("dry_run", dryRun),
	)
	return true, nil
}

// EnsureMonths creates missing notes for every month, continuing past
// failures. It returns how many notes were created.
func (m *Manager) EnsureMonths(ctx context.Context, months []time.Time, dryRun bool) (int, error) {
	created := 0
	var failures []string
	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		ok, err := m.Ensure(month, dryRun)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", month.Format("2006-01"), err))
			continue
		}
		if ok {
			created++
		}
	}
	if len(failures) > 0 {
		return created, fmt.Errorf("calendar: %s", strings.Join(failures, "; "))
	}
	return created, nil
}

// StripQuickLinks removes the legacy quick links section from existing month
// notes and returns how many notes changed.
func (m *Manager) StripQuickLinks(ctx context.Context, months []time.Time, dryRun bool) (int, error) {
	modified := 0
	for _, month := range months {
		if err := ctx.Err(); err != nil {
			return modified, err
		}
		path := m.store.MonthPath(firstOfMonth(month))
		doc, ok, err := m.store.ReadFile(path)
		if err != nil {
			return modified, err
		}
		if !ok {
			continue
		}
		stripped, changed := QuickLinksSection.Retract(doc)
		if !changed {
			continue
		}
		if !dryRun {
			if err := m.store.WriteFile(path, stripped); err != nil {
				return modified, err
			}
		}
		modified++
	}
	return modified, nil
}

// build renders a new month note, adapting a sibling month of the same year
// when one exists. The second result names the template used, if any.
func (m *Manager) build(month time.Time) (note.Document, string, error) {
	for _, sibling := range siblings(month) {
		path := m.store.MonthPath(sibling)
		template, ok, err := m.store.ReadFile(path)
		if err != nil {
			return note.Document{}, "", err
		}
		if ok {
			doc, err := Adapt(template, month)
			return doc, path, err
		}
	}
	doc, err := Content(month)
	return doc, "", err
}

// Content returns a fresh month note.
func Content(month time.Time) (note.Document, error) {
	view, summary, err := blocks(month)
	if err != nil {
		return note.Document{}, err
	}
	doc := ViewSection.Apply(nil, view, Title(month))
	return SummarySection.Apply(&doc, summary, ""), nil
}

// Adapt rewrites a sibling month's note for month: the title, calendar view,
// and monthly summary are regenerated and every other line is kept.
func Adapt(template note.Document, month time.Time) (note.Document, error) {
	view, summary, err := blocks(month)
	if err != nil {
		return note.Document{}, err
	}
	lines := template.Lines()
	retitled := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "# ") {
			lines[i] = Title(month)
			retitled = true
			break
		}
	}
	if !retitled {
		lines = append([]string{Title(month), ""}, lines...)
	}
	doc := note.New(lines...)
	doc = ViewSection.Apply(&doc, view, "")
	return SummarySection.Apply(&doc, summary, ""), nil
}

// Title returns the heading of a month note.
func Title(month time.Time) string {
	return "# " + month.Format("January 2006")
}

func blocks(month time.Time) (note.Block, note.Block, error) {
	view, err := ViewSection.NewBlock(viewLines(month)...)
	if err != nil {
		return note.Block{}, note.Block{}, err
	}
	summary, err := SummarySection.NewBlock(SummarySection.Marker, "", summaryPlaceholder)
	if err != nil {
		return note.Block{}, note.Block{}, err
	}
	return view, summary, nil
}

// viewLines renders the Monday-first month table.
func viewLines(month time.Time) []string {
	first := firstOfMonth(month)
	lines := []string{
		ViewSection.Marker,
		"",
		"| Mon | Tue | Wed | Thu | Fri | Sat | Sun |",
		"|-----|-----|-----|-----|-----|-----|-----|",
	}
	// Monday is column zero.
	offset := (int(first.Weekday()) + 6) % 7
	days := first.AddDate(0, 1, -1).Day()

	var row strings.Builder
	row.WriteString("|")
	for i := 0; i < offset; i++ {
		row.WriteString("  |")
	}
	col := offset
	for d := 1; d <= days; d++ {
		date := time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, first.Location())
		// The alias pipe must be escaped inside a table row.
		fmt.Fprintf(&row, " [[%s\\|%d]] |", date.Format("02-01-2006"), d)
		col++
		if col == 7 {
			lines = append(lines, row.String())
			row.Reset()
			row.WriteString("|")
			col = 0
		}
	}
	if col > 0 {
		for ; col < 7; col++ {
			row.WriteString("  |")
		}
		lines = append(lines, row.String())
	}
	return append(lines, "")
}

// siblings lists the other months of month's year, nearest first.
func siblings(month time.Time) []time.Time {
	var out []time.Time
	for distance := 1; distance < 12; distance++ {
		for _, delta := range []int{-distance, distance} {
			candidate := int(month.Month()) + delta
			if candidate < 1 || candidate > 12 {
				continue
			}
			out = append(out, time.Date(month.Year(), time.Month(candidate), 1, 0, 0, 0, 0, month.Location()))
		}
	}
	return out
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
