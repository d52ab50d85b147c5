package github

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const maxMessageRunes = 100

var conventionalPrefixes = []string{
	"feat:", "fix:", "docs:", "style:", "refactor:", "test:", "chore:",
	"add:", "update:", "remove:", "delete:", "create:", "modify:",
	"[feat]", "[fix]", "[docs]", "[style]", "[refactor]", "[test]", "[chore]",
	"feat(", "fix(", "docs(", "style(", "refactor(", "test(", "chore(",
}

// ReadableMessage turns a raw commit message into a one-line display form:
// conventional prefixes and scopes are dropped, the first letter is
// capitalised, trailing punctuation is removed, and long messages are
// truncated. An empty result falls back to the original first line.
func ReadableMessage(message string) string {
	original := firstLine(norm.NFC.String(message))
	text := original
	for _, prefix := range conventionalPrefixes {
		if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
			continue
		}
		text = strings.TrimSpace(text[len(prefix):])
		if strings.HasSuffix(prefix, "(") {
			if idx := strings.Index(text, ":"); idx >= 0 {
				text = strings.TrimSpace(text[idx+1:])
			}
		}
		break
	}
	if strings.Contains(text, "(") && strings.Contains(text, ")") {
		if idx := strings.Index(text, ":"); idx >= 0 {
			text = strings.TrimSpace(text[idx+1:])
		}
	}
	text = strings.TrimRight(text, ".!? ")
	if text == "" {
		return original
	}
	r, size := utf8.DecodeRuneInString(text)
	text = string(unicode.ToUpper(r)) + text[size:]
	if runes := []rune(text); len(runes) > maxMessageRunes {
		text = string(runes[:maxMessageRunes-3]) + "..."
	}
	return text
}

func firstLine(message string) string {
	message = strings.TrimSpace(message)
	if idx := strings.IndexAny(message, "\r\n"); idx >= 0 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}
