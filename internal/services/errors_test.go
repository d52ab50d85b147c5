package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"daynote/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrIO, "vault", "write", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"vault", "write", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestOutcomeMapping(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{services.Wrap(services.ErrRender, "render", "block", "bad", nil), "render_error"},
		{fmt.Errorf("day: %w", services.Wrap(services.ErrIO, "vault", "read", "", nil)), "io_error"},
		{services.Wrap(services.ErrFeed, "github", "repos", "", nil), "feed_error"},
		{services.Wrap(services.ErrConfiguration, "config", "", "", nil), "config_error"},
		{errors.New("other"), "error"},
	}
	for _, tt := range tests {
		if got := services.Outcome(tt.err); got != tt.want {
			t.Fatalf("unexpected outcome for %v: got %q want %q", tt.err, got, tt.want)
		}
	}
}
