package services

import (
	"context"
	"time"
)

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	dateKey      contextKey = "date"
	componentKey contextKey = "component"
)

// DateLayout is the canonical date form used in logs and history rows.
const DateLayout = "2006-01-02"

// WithRunID annotates context with the sync or cleanup run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithDate annotates context with the calendar date being processed.
func WithDate(ctx context.Context, date time.Time) context.Context {
	if date.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, dateKey, date.Format(DateLayout))
}

// DateFromContext returns the processed date in DateLayout form if present.
func DateFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(dateKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithComponent annotates context with the emitting component name.
func WithComponent(ctx context.Context, component string) context.Context {
	if component == "" {
		return ctx
	}
	return context.WithValue(ctx, componentKey, component)
}

// ComponentFromContext returns the component name if present.
func ComponentFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(componentKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
