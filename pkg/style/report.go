package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/aidot/pkg/types"
)

// ChangeDescriber returns a short note for a modified file, such as "+3 lines"
type ChangeDescriber func(change types.PendingChange) string

// ToolStatus is one row of a detection report
type ToolStatus struct {
	Name     string
	Detected bool
	Notes    []string
}

// RenderScan renders scan results grouped by adapter, followed by a summary
func RenderScan(results []types.ScanResult, describe ChangeDescriber) string {
	var b strings.Builder
	var created, modified, unchanged int

	for _, r := range results {
		if len(r.Changes) == 0 {
			continue
		}
		b.WriteString(TitleStyle.Render(r.Adapter) + "\n")
		for _, c := range r.Changes {
			switch {
			case c.IsIdentical:
				unchanged++
			case c.IsConflict:
				modified++
			default:
				created++
			}
			b.WriteString(Indent(renderChange(c, describe), 1) + "\n")
		}
		b.WriteString("\n")
	}

	if created+modified+unchanged == 0 {
		return MutedStyle.Render("Nothing to apply")
	}

	b.WriteString(fmt.Sprintf("Summary: %d new, %d modified, %d unchanged", created, modified, unchanged))
	return b.String()
}

func renderChange(c types.PendingChange, describe ChangeDescriber) string {
	switch {
	case c.IsIdentical:
		return UnchangedStyle.Render("= "+c.Path) + MutedStyle.Render(" (unchanged)")
	case c.IsConflict:
		note := "modified"
		if describe != nil {
			if d := describe(c); d != "" {
				note = "modified: " + d
			}
		}
		return UpdatedStyle.Render("~ "+c.Path) + MutedStyle.Render(" ("+note+")")
	default:
		return CreatedStyle.Render("+ "+c.Path) + MutedStyle.Render(" (new)")
	}
}

// RenderApply renders what an apply pass did
func RenderApply(result *types.ApplyResult) string {
	if result == nil || result.Total() == 0 {
		return MutedStyle.Render("No files were processed")
	}

	var b strings.Builder
	groups := []struct {
		title string
		paths []string
		mark  string
		style func(...string) string
	}{
		{"Created", result.Created, "+", CreatedStyle.Render},
		{"Updated", result.Updated, "~", UpdatedStyle.Render},
		{"Skipped", result.Skipped, "!", SkippedStyle.Render},
		{"Unchanged", result.Unchanged, "=", UnchangedStyle.Render},
	}
	for _, g := range groups {
		if len(g.paths) == 0 {
			continue
		}
		b.WriteString(TitleStyle.Render(g.title) + "\n")
		for _, p := range g.paths {
			b.WriteString(Indent(g.style(g.mark+" "+p), 1) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(SuccessStyle.Render("Done: ") + fmt.Sprintf("%d created, %d updated, %d skipped, %d unchanged",
		len(result.Created), len(result.Updated), len(result.Skipped), len(result.Unchanged)))
	return b.String()
}

// RenderTools renders a detection report
func RenderTools(tools []ToolStatus) string {
	if len(tools) == 0 {
		return MutedStyle.Render("No tools known")
	}

	var b strings.Builder
	for i, t := range tools {
		if i > 0 {
			b.WriteString("\n")
		}
		if t.Detected {
			b.WriteString(SuccessStyle.Render("✓ ") + t.Name + MutedStyle.Render(" (detected)"))
		} else {
			b.WriteString(MutedStyle.Render("· " + t.Name + " (not detected)"))
		}
		for _, note := range t.Notes {
			b.WriteString("\n" + Indent(MutedStyle.Render(note), 2))
		}
	}
	return b.String()
}
