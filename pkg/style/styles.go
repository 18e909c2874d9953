package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)

// Change styles
var (
	CreatedStyle   = lipgloss.NewStyle().Foreground(CreatedColor)
	UpdatedStyle   = lipgloss.NewStyle().Foreground(UpdatedColor)
	SkippedStyle   = lipgloss.NewStyle().Foreground(SkippedColor)
	UnchangedStyle = lipgloss.NewStyle().Foreground(UnchangedColor)
)

// Diff styles
var (
	DiffAddedStyle   = lipgloss.NewStyle().Foreground(SuccessColor)
	DiffRemovedStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	DiffHunkStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	DiffHeaderStyle  = lipgloss.NewStyle().Bold(true)
)

// Indent prefixes every line of s with level*2 spaces
func Indent(s string, level int) string {
	pad := strings.Repeat("  ", level)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
