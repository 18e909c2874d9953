package content

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffContext is the number of unchanged lines shown around each hunk
const DiffContext = 3

// UnifiedDiff renders the change from the local file to the preset version.
// It returns an empty string when the two are equal.
func UnifiedDiff(path, local, preset string) string {
	if local == preset {
		return ""
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(local),
		B:        difflib.SplitLines(preset),
		FromFile: "(local) " + path,
		ToFile:   "(preset) " + path,
		Context:  DiffContext,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

// DescribeChange summarises a modification by its line count delta
func DescribeChange(local, preset string) string {
	before := lineCount(local)
	after := lineCount(preset)
	switch {
	case after > before:
		return fmt.Sprintf("+%d lines", after-before)
	case after < before:
		return fmt.Sprintf("-%d lines", before-after)
	default:
		return "content differs"
	}
}

func lineCount(text string) int {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
