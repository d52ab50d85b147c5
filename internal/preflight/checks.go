package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"daynote/internal/config"
	"daynote/internal/github"
	"daynote/internal/services/llm"
	"daynote/internal/services/retry"
)

// CheckLLM verifies that the LLM API is reachable and the key is valid.
// It uses a 30-second timeout and a single attempt (no retries).
func CheckLLM(ctx context.Context, name string, cfg config.LLMConfig) Result {
	if cfg.APIKey == "" {
		return Result{Name: name, Detail: "API key missing"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client := llm.NewClient(llm.Config{
		APIKey:         cfg.APIKey,
		BaseURL:        cfg.BaseURL,
		Model:          cfg.Model,
		Referer:        cfg.Referer,
		Title:          cfg.Title,
		TimeoutSeconds: cfg.TimeoutSeconds,
	}, llm.WithRetryMaxAttempts(1))

	if err := client.HealthCheck(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizeLLMError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "API reachable"}
}

// CheckGitHub verifies the token against the API and that it belongs to the
// configured user.
func CheckGitHub(ctx context.Context, cfg *config.Config) Result {
	const name = "GitHub"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if err := cfg.RequireGitHub(); err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client := github.NewClient(github.Config{
		Token:          cfg.GitHub.Token,
		Username:       cfg.GitHub.Username,
		BaseURL:        cfg.GitHub.BaseURL,
		TimeoutSeconds: cfg.GitHub.TimeoutSeconds,
	}, github.WithRetryPolicy(retry.Policy{MaxAttempts: 1}))

	login, err := client.CheckAuth(checkCtx)
	if err != nil {
		var statusErr *retry.StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return Result{Name: name, Detail: fmt.Sprintf("auth failed (%d, invalid token)", statusErr.StatusCode)}
			default:
				return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%d)", statusErr.StatusCode)}
			}
		}
		return Result{Name: name, Detail: fmt.Sprintf("auth check failed (%v)", err)}
	}
	if !equalLogin(login, cfg.GitHub.Username) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("token belongs to %s, syncing %s", login, cfg.GitHub.Username)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("authenticated as %s", login)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// summarizeLLMError produces a human-readable summary for LLM health check failures.
func summarizeLLMError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (LLM API unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (LLM API unreachable)"
	}
	return err.Error()
}
