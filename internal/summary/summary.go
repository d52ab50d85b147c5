// Package summary writes the AI paragraph at the top of a day's activity
// block and caches it by commit fingerprint so re-runs render identically.
package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"daynote/internal/activity"
	"daynote/internal/logging"
	"daynote/internal/services/llm"
)

// DefaultPrompt asks for the summary when no custom prompt is configured.
const DefaultPrompt = "Write a brief, professional summary (2-3 sentences) of this day's development work. Focus on what was built or fixed, not on commit counts."

const systemPrompt = "You are a helpful assistant that summarizes GitHub development activity in a concise, professional manner. Respond with JSON only: {\"summary\": \"...\"}."

// Completer issues a JSON-only chat completion.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Cache persists summaries by day and fingerprint.
type Cache interface {
	LookupSummary(ctx context.Context, day, fingerprint string) (string, bool, error)
	StoreSummary(ctx context.Context, day, fingerprint, model, summary string) error
}

// Cached produces summaries through an LLM, consulting the cache first.
type Cached struct {
	completer Completer
	cache     Cache
	model     string
	prompt    string
	logger    *slog.Logger
}

// NewCached constructs a summarizer. A nil cache disables caching.
func NewCached(completer Completer, cache Cache, model, prompt string, logger *slog.Logger) *Cached {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Cached{
		completer: completer,
		cache:     cache,
		model:     model,
		prompt:    prompt,
		logger:    logging.NewComponentLogger(logger, "summary"),
	}
}

// Summarize returns the summary for date's commits.
func (c *Cached) Summarize(ctx context.Context, date time.Time, commits []activity.Commit) (string, error) {
	if len(commits) == 0 {
		return "", nil
	}
	if c.completer == nil {
		return "", errors.New("summary: no completer configured")
	}
	day := activity.Key(date)
	fingerprint := Fingerprint(commits)
	if c.cache != nil {
		cached, ok, err := c.cache.LookupSummary(ctx, day, fingerprint)
		if err != nil {
			c.logger.Debug("summary cache lookup failed", logging.String("day", day), logging.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	raw, err := c.completer.CompleteJSON(ctx, systemPrompt, c.userPrompt(date, commits))
	if err != nil {
		return "", fmt.Errorf("summary %s: %w", day, err)
	}
	var payload struct {
		Summary string `json:"summary"`
	}
	if err := llm.DecodeLLMJSON(raw, &payload); err != nil {
		return "", fmt.Errorf("summary %s: decode: %w", day, err)
	}
	summary := strings.TrimSpace(payload.Summary)
	if summary == "" {
		return "", fmt.Errorf("summary %s: empty summary", day)
	}
	if c.cache != nil {
		if err := c.cache.StoreSummary(ctx, day, fingerprint, c.model, summary); err != nil {
			logging.WarnWithContext(c.logger, "summary cache write failed", "summary_cache_failed",
				logging.String("day", day),
				logging.Error(err),
				logging.String(logging.FieldImpact, "the summary may be regenerated on the next run"),
			)
		}
	}
	return summary, nil
}

func (c *Cached) userPrompt(date time.Time, commits []activity.Commit) string {
	totals := activity.Summarize(commits)
	var b strings.Builder
	b.WriteString(c.prompt)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Date: %s\n", date.Format("Monday, January 2, 2006"))
	fmt.Fprintf(&b, "Total commits: %d\n", totals.Commits)
	fmt.Fprintf(&b, "Repositories: %s\n", strings.Join(activity.RepoNames(commits), ", "))
	fmt.Fprintf(&b, "Files changed: %d\n", totals.Files)
	fmt.Fprintf(&b, "Lines added: %d\n", totals.Additions)
	fmt.Fprintf(&b, "Lines deleted: %d\n", totals.Deletions)
	b.WriteString("\nCommits:\n")
	for _, commit := range commits {
		fmt.Fprintf(&b, "- %s: %s\n", commit.Repo, commit.DisplayMessage())
	}
	return b.String()
}

// Fingerprint identifies a day's commit set independent of order.
func Fingerprint(commits []activity.Commit) string {
	keys := make([]string, 0, len(commits))
	for _, commit := range commits {
		keys = append(keys, commit.Repo+"@"+commit.SHA)
	}
	sort.Strings(keys)
	sum := sha256.Sum256([]byte(strings.Join(keys, "\n")))
	return hex.EncodeToString(sum[:])
}
