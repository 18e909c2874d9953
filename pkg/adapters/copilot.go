package adapters

import (
	"github.com/arthur-debert/aidot/pkg/content"
	"github.com/arthur-debert/aidot/pkg/merge"
	"github.com/arthur-debert/aidot/pkg/types"
)

// Copilot writes GitHub Copilot's layout below .github/, with MCP servers in
// the VS Code workspace config. It has no settings or hooks.
type Copilot struct{ layout }

type copilotRuleMeta struct {
	ApplyTo string `yaml:"applyTo"`
}

func NewCopilot() *Copilot {
	return &Copilot{layout{
		name: "GitHub Copilot",
		id:   "copilot",
		markers: []string{
			".github/copilot-instructions.md",
			".github/instructions",
			".github/prompts",
			".vscode/mcp.json",
		},
		mappings: []Mapping{
			{Section: types.SectionMemory, Engine: EngineConcat, Path: ".github/copilot-instructions.md"},
			{Section: types.SectionMCP, Engine: EngineJSON, Path: ".vscode/mcp.json", JSONKind: merge.JSONWrapped, WrapperKey: "servers"},
			{
				Section:   types.SectionRules,
				Engine:    EngineOneToOne,
				Path:      ".github/instructions",
				Rename:    suffixed("instructions"),
				Transform: copilotRule,
				Restore:   unsuffixed("instructions"),
				Revert:    globsFromApplyTo,
			},
			{Section: types.SectionCommands, Engine: EngineOneToOne, Path: ".github/prompts", Rename: suffixed("prompt"), Restore: unsuffixed("prompt")},
			{Section: types.SectionAgents, Engine: EngineOneToOne, Path: ".github/agents", Rename: suffixed("agent"), Restore: unsuffixed("agent")},
			{Section: types.SectionSkills, Engine: EngineOneToOne, Path: ".github/skills"},
		},
	}}
}

// suffixed renames "x.md" to "x.<suffix>.md", leaving already suffixed names alone
func suffixed(suffix string) func(string) string {
	return func(name string) string {
		return content.AddSuffixBeforeExt(content.RemoveSuffixBeforeExt(name, suffix), suffix)
	}
}

// copilotRule maps Cursor-style globs to applyTo; rules without frontmatter
// apply to every file.
func copilotRule(text string) (string, error) {
	text = content.ConvertFrontmatterKey(text, "globs", "applyTo")
	return content.EnsureFrontmatter(text, copilotRuleMeta{ApplyTo: "**"})
}

func unsuffixed(suffix string) func(string) string {
	return func(name string) string {
		return content.RemoveSuffixBeforeExt(name, suffix)
	}
}

func globsFromApplyTo(text string) string {
	return content.ConvertFrontmatterKey(text, "applyTo", "globs")
}
