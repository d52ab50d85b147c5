package history

import "time"

// Kind distinguishes the operations recorded in history.
type Kind string

const (
	KindSync     Kind = "sync"
	KindCleanup  Kind = "cleanup"
	KindCalendar Kind = "calendar"
)

// Status is the terminal state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Counts tallies per-day outcomes of a run.
type Counts struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Retracted int `json:"retracted"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Changed returns the number of notes that were written.
func (c Counts) Changed() int {
	return c.Created + c.Updated + c.Retracted
}

// Total returns the number of days accounted for.
func (c Counts) Total() int {
	return c.Changed() + c.Unchanged + c.Skipped + c.Failed
}

// Run is one recorded sync, cleanup, or calendar pass.
type Run struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	Status     Status    `json:"status"`
	RangeStart string    `json:"range_start"`
	RangeEnd   string    `json:"range_end"`
	Counts     Counts    `json:"counts"`
	Error      string    `json:"error,omitempty"`
}

// Duration returns how long the run took, or zero while it is running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Day is the recorded outcome for one date within a run.
type Day struct {
	RunID   string `json:"run_id"`
	Day     string `json:"day"`
	Outcome string `json:"outcome"`
	Commits int    `json:"commits"`
	Error   string `json:"error,omitempty"`
}
