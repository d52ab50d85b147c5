package retry_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"daynote/internal/services/retry"
)

type flaky struct{}

func (flaky) Error() string   { return "flaky" }
func (flaky) Retryable() bool { return true }

func TestDoRetriesServerErrors(t *testing.T) {
	var slept []time.Duration
	policy := retry.Policy{MaxAttempts: 4, BaseDelay: time.Second, MaxDelay: 3 * time.Second, Sleeper: func(d time.Duration) { slept = append(slept, d) }}

	calls := 0
	err := policy.Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 4 {
			return &retry.StatusError{Op: "op", StatusCode: http.StatusBadGateway}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if len(slept) != len(want) {
		t.Fatalf("unexpected sleeps: %v", slept)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Fatalf("sleep %d: got %v want %v", i, slept[i], want[i])
		}
	}
}

func TestDoStopsOnClientErrors(t *testing.T) {
	policy := retry.Policy{MaxAttempts: 5, Sleeper: func(time.Duration) {}}
	calls := 0
	err := policy.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return &retry.StatusError{Op: "op", StatusCode: http.StatusUnauthorized, Body: "bad credentials"}
	})
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
	var statusErr *retry.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestDoGivesUpAfterMaxAttempts(t *testing.T) {
	policy := retry.Policy{MaxAttempts: 3, Sleeper: func(time.Duration) {}}
	calls := 0
	err := policy.Do(context.Background(), "fetch", func(context.Context) error {
		calls++
		return flaky{}
	})
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if err == nil || !errors.As(err, new(flaky)) {
		t.Fatalf("expected last error to be wrapped, got %v", err)
	}
}

func TestDelayHonoursRetryAfter(t *testing.T) {
	policy := retry.Policy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 5 * time.Second}
	delay, ok := policy.Delay(context.Background(), &retry.StatusError{StatusCode: http.StatusTooManyRequests, RetryAfter: time.Minute}, 1)
	if !ok || delay != 5*time.Second {
		t.Fatalf("expected capped retry-after delay, got %v %v", delay, ok)
	}
}

func TestDelayStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := retry.DefaultPolicy().Delay(ctx, flaky{}, 1); ok {
		t.Fatal("expected no retry after cancellation")
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d, ok := retry.ParseRetryAfter("7"); !ok || d != 7*time.Second {
		t.Fatalf("unexpected seconds parse: %v %v", d, ok)
	}
	if _, ok := retry.ParseRetryAfter("-1"); ok {
		t.Fatal("expected negative seconds to be rejected")
	}
	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	if d, ok := retry.ParseRetryAfter(future); !ok || d <= 0 {
		t.Fatalf("unexpected date parse: %v %v", d, ok)
	}
	if _, ok := retry.ParseRetryAfter("soon"); ok {
		t.Fatal("expected garbage to be rejected")
	}
}
