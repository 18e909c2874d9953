package style_test

import (
	"os"
	"strings"
	"testing"

	"github.com/arthur-debert/aidot/pkg/style"
	"github.com/arthur-debert/aidot/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]style.Format{
		"":         style.FormatAuto,
		"auto":     style.FormatAuto,
		"terminal": style.FormatTerminal,
		"plain":    style.FormatText,
		"JSON":     style.FormatJSON,
	}
	for in, want := range tests {
		got, err := style.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := style.ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormat_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, style.FormatText, style.DetectFormat(os.Stdout))
}

func TestIsTerminal_Nil(t *testing.T) {
	assert.False(t, style.IsTerminal(nil))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "    a\n\n    b", style.Indent("a\n\nb", 2))
}

func TestRenderDiff_KeepsText(t *testing.T) {
	diff := "--- (local) a\n+++ (preset) a\n@@ -1 +1 @@\n-old\n+new\n same"
	assert.Equal(t, diff, style.RenderDiff(diff))
}

func TestRenderScan(t *testing.T) {
	results := []types.ScanResult{
		{Adapter: "Claude Code", Changes: []types.PendingChange{
			{Path: ".claude/CLAUDE.md", Section: "memory"},
			{Path: ".claude/rules/a.md", Section: "rules", IsConflict: true},
			{Path: ".claude/rules/b.md", Section: "rules", IsConflict: true, IsIdentical: true},
		}},
		{Adapter: "Cursor"},
	}

	out := style.RenderScan(results, func(types.PendingChange) string { return "+2 lines" })

	assert.Contains(t, out, "Claude Code")
	assert.NotContains(t, out, "Cursor")
	assert.Contains(t, out, "+ .claude/CLAUDE.md (new)")
	assert.Contains(t, out, "~ .claude/rules/a.md (modified: +2 lines)")
	assert.Contains(t, out, "= .claude/rules/b.md (unchanged)")
	assert.True(t, strings.HasSuffix(out, "Summary: 1 new, 1 modified, 1 unchanged"))

	assert.Equal(t, "Nothing to apply", style.RenderScan(nil, nil))
}

func TestRenderApply(t *testing.T) {
	result := &types.ApplyResult{}
	result.AddCreated("a")
	result.AddSkipped("b")

	out := style.RenderApply(result)
	assert.Contains(t, out, "Created")
	assert.Contains(t, out, "+ a")
	assert.Contains(t, out, "! b")
	assert.NotContains(t, out, "Updated")
	assert.Contains(t, out, "1 created, 0 updated, 1 skipped, 0 unchanged")

	assert.Equal(t, "No files were processed", style.RenderApply(&types.ApplyResult{}))
}

func TestRenderTools(t *testing.T) {
	out := style.RenderTools([]style.ToolStatus{
		{Name: "Claude Code", Detected: true, Notes: []string{".claude/"}},
		{Name: "Cursor"},
	})
	assert.Contains(t, out, "✓ Claude Code (detected)")
	assert.Contains(t, out, "    .claude/")
	assert.Contains(t, out, "· Cursor (not detected)")
}
