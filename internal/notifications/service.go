package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"daynote/internal/config"
)

const userAgent = "daynote/0.1.0"

// RunSummary describes a finished sync or cleanup run.
type RunSummary struct {
	RangeStart string
	RangeEnd   string
	Created    int
	Updated    int
	Retracted  int
	Unchanged  int
	Skipped    int
	Failed     int
	Commits    int
	Duration   time.Duration
	DryRun     bool
}

// Service defines the notification surface used by the workflow.
type Service interface {
	NotifySyncCompleted(ctx context.Context, summary RunSummary) error
	NotifyCleanupCompleted(ctx context.Context, summary RunSummary) error
	NotifyError(ctx context.Context, err error, contextLabel string) error
	TestNotification(ctx context.Context) error
}

// NewService builds an ntfy-backed service, or a no-op one when no topic is
// configured.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}
	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		sync:     cfg.Notifications.Sync,
		cleanup:  cfg.Notifications.Cleanup,
		errors:   cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	sync     bool
	cleanup  bool
	errors   bool
}

func (n *ntfyService) NotifySyncCompleted(ctx context.Context, s RunSummary) error {
	if !n.sync {
		return nil
	}
	title := "daynote - Sync Complete"
	if s.Failed > 0 {
		title = "daynote - Sync Complete (with errors)"
	}
	message := fmt.Sprintf("📊 %s: %d created, %d updated, %d retracted, %d unchanged",
		rangeLabel(s), s.Created, s.Updated, s.Retracted, s.Unchanged)
	if s.Skipped > 0 || s.Failed > 0 {
		message += fmt.Sprintf(", %d skipped, %d failed", s.Skipped, s.Failed)
	}
	message += fmt.Sprintf("\n%d commits in %s", s.Commits, durationText(s.Duration))
	return n.send(ctx, payload{
		title:   title,
		message: dryRunPrefix(s) + message,
		tags:    []string{"daynote", "sync", "completed"},
	})
}

func (n *ntfyService) NotifyCleanupCompleted(ctx context.Context, s RunSummary) error {
	if !n.cleanup {
		return nil
	}
	// A sweep that changed nothing is not worth a push.
	if s.Created+s.Retracted+s.Failed == 0 {
		return nil
	}
	message := fmt.Sprintf("🧹 %s: %d retracted, %d created", rangeLabel(s), s.Retracted, s.Created)
	if s.Failed > 0 {
		message += fmt.Sprintf(", %d failed", s.Failed)
	}
	return n.send(ctx, payload{
		title:   "daynote - Cleanup Complete",
		message: dryRunPrefix(s) + message,
		tags:    []string{"daynote", "cleanup", "completed"},
	})
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("❌ Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}
	return n.send(ctx, payload{
		title:    "daynote - Error",
		message:  builder.String(),
		tags:     []string{"daynote", "error", "alert"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "daynote - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"daynote", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func rangeLabel(s RunSummary) string {
	if s.RangeStart == s.RangeEnd || s.RangeEnd == "" {
		return s.RangeStart
	}
	return s.RangeStart + " → " + s.RangeEnd
}

func dryRunPrefix(s RunSummary) string {
	if s.DryRun {
		return "[dry run] "
	}
	return ""
}

func durationText(d time.Duration) string {
	d = d.Round(time.Second)
	if d <= 0 {
		return "0s"
	}
	return d.String()
}

type noopService struct{}

func (noopService) NotifySyncCompleted(context.Context, RunSummary) error    { return nil }
func (noopService) NotifyCleanupCompleted(context.Context, RunSummary) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error         { return nil }
func (noopService) TestNotification(context.Context) error                   { return nil }
