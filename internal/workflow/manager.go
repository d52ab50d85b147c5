package workflow

import (
	"log/slog"
	"time"

	"daynote/internal/config"
	"daynote/internal/logging"
	"daynote/internal/note"
	"daynote/internal/notifications"
	"daynote/internal/vault"
)

// Dependencies bundles the collaborators the manager orchestrates. Feed and
// Renderer are required for Sync; Calendar and History are optional.
type Dependencies struct {
	Store    Store
	Feed     Feed
	Renderer Renderer
	Calendar Calendar
	History  Recorder
	Notifier notifications.Service
}

// Manager coordinates sync, cleanup, and calendar runs over the vault.
type Manager struct {
	cfg      *config.Config
	store    Store
	feed     Feed
	renderer Renderer
	calendar Calendar
	history  Recorder
	notifier notifications.Service
	logger   *slog.Logger

	section note.Section
	header  func(time.Time) string
	now     func() time.Time
	newID   func() string
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithClock overrides the time source used for "today" and run durations.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithRunIDs overrides run identifier generation.
func WithRunIDs(next func() string) ManagerOption {
	return func(m *Manager) {
		if next != nil {
			m.newID = next
		}
	}
}

// NewManager constructs a new workflow manager.
func NewManager(cfg *config.Config, deps Dependencies, logger *slog.Logger, opts ...ManagerOption) *Manager {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	m := &Manager{
		cfg:      cfg,
		store:    deps.Store,
		feed:     deps.Feed,
		renderer: deps.Renderer,
		calendar: deps.Calendar,
		history:  deps.History,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		section:  note.ActivitySection,
		header:   vault.HeaderFor,
		now:      time.Now,
		newID:    newRunID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) location() *time.Location {
	if m.cfg == nil {
		return time.UTC
	}
	return m.cfg.Location()
}
