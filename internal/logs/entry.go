package logs

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Entry is one decoded JSON log record.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  map[string]any
}

// Parse decodes a JSON log line. Lines that are not JSON objects report
// false.
func Parse(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}
	entry := Entry{
		Time:    stringField(raw, "ts"),
		Level:   strings.ToLower(stringField(raw, "level")),
		Message: stringField(raw, "msg"),
		Fields:  raw,
	}
	delete(raw, "ts")
	delete(raw, "level")
	delete(raw, "msg")
	delete(raw, "source")
	return entry, true
}

// Field returns a field rendered as text, or "" when absent.
func (e Entry) Field(key string) string {
	value, ok := e.Fields[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Format renders the entry as "ts LEVEL msg key=value ...", fields sorted by
// key.
func (e Entry) Format() string {
	var b strings.Builder
	b.WriteString(e.Time)
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(e.Level))
	b.WriteByte(' ')
	b.WriteString(e.Message)
	for _, key := range slices.Sorted(maps.Keys(e.Fields)) {
		value := e.Field(key)
		if strings.ContainsAny(value, " \t\"") {
			value = fmt.Sprintf("%q", value)
		}
		fmt.Fprintf(&b, " %s=%s", key, value)
	}
	return b.String()
}

// Filter selects entries. Empty fields match everything.
type Filter struct {
	RunID string
	Date  string
	// Level is the minimum level: debug, info, warn, or error.
	Level string
}

// Match reports whether entry passes the filter. RunID matches by prefix.
func (f Filter) Match(entry Entry) bool {
	if f.RunID != "" && !strings.HasPrefix(entry.Field("run_id"), f.RunID) {
		return false
	}
	if f.Date != "" && entry.Field("date") != f.Date {
		return false
	}
	if f.Level != "" && levelRank(entry.Level) < levelRank(f.Level) {
		return false
	}
	return true
}

// Empty reports whether the filter matches everything.
func (f Filter) Empty() bool {
	return f == Filter{}
}

func levelRank(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return 0
	case "info":
		return 1
	case "warn", "warning":
		return 2
	case "error":
		return 3
	default:
		return 1
	}
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}
