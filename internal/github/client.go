package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"daynote/internal/logging"
	"daynote/internal/services/retry"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 30 * time.Second
	pageSize       = 100
	maxPages       = 50
	acceptHeader   = "application/vnd.github.v3+json"
)

// Config captures the feed settings.
type Config struct {
	Token          string
	Username       string
	BaseURL        string
	TimeoutSeconds int
	// FilterKeywords drops commits whose lowercased message contains any
	// keyword. Empty disables filtering.
	FilterKeywords []string
	// ReadableMessages rewrites conventional-commit messages for display.
	ReadableMessages bool
	// MaxCommitsPerDay caps each day's record set when positive.
	MaxCommitsPerDay int
	// Location buckets commits into calendar days. Nil means UTC.
	Location *time.Location
}

// Client talks to the GitHub REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	policy     retry.Policy
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(c *Client) {
		c.policy = policy
	}
}

// WithLogger attaches a logger for skipped repositories and commits.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a feed client.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.Username = strings.TrimSpace(cfg.Username)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		policy:     retry.DefaultPolicy(),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "github")
	return client
}

// CheckAuth verifies the token and returns the authenticated login.
func (c *Client) CheckAuth(ctx context.Context) (string, error) {
	var user struct {
		Login string `json:"login"`
	}
	if _, err := c.getJSON(ctx, "github auth", "/user", nil, &user); err != nil {
		return "", err
	}
	if user.Login == "" {
		return "", fmt.Errorf("github auth: response missing login")
	}
	return user.Login, nil
}

// getJSON issues a GET against the API and decodes the response into target.
// It returns the HTTP status so callers can treat specific codes (404, 409)
// as absence rather than failure.
func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, target any) (int, error) {
	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var status int
	err := c.policy.Do(ctx, op, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("%s: new request: %w", op, err)
		}
		req.Header.Set("Accept", acceptHeader)
		if c.cfg.Token != "" {
			req.Header.Set("Authorization", "token "+c.cfg.Token)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%s: http error: %w", op, err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%s: read body: %w", op, err)
		}
		status = resp.StatusCode
		if resp.StatusCode >= http.StatusMultipleChoices {
			return retry.NewStatusError(op, resp, body)
		}
		if err := json.Unmarshal(body, target); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
		return nil
	})
	return status, err
}
