package content

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text for equality comparison. Line endings are
// unified, every line is right-trimmed and the whole result is trimmed.
// The output is only ever compared, never written.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Equivalent reports whether a and b differ only in whitespace Normalize ignores
func Equivalent(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
