package style

import (
	"strings"
)

// RenderDiff colours a unified diff line by line
func RenderDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			lines[i] = DiffHeaderStyle.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = DiffHunkStyle.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = DiffAddedStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = DiffRemovedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
