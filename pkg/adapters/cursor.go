package adapters

import (
	"github.com/arthur-debert/aidot/pkg/content"
	"github.com/arthur-debert/aidot/pkg/merge"
	"github.com/arthur-debert/aidot/pkg/types"
)

// Cursor writes memory to .cursorrules and everything else below .cursor/.
// Rules become .mdc files carrying Cursor's frontmatter.
type Cursor struct{ layout }

// cursorRuleMeta is the frontmatter added to rules that have none.
// Field order is the order Cursor itself writes.
type cursorRuleMeta struct {
	Description string `yaml:"description"`
	Globs       string `yaml:"globs"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

func NewCursor() *Cursor {
	return &Cursor{layout{
		name:        "Cursor",
		id:          "cursor",
		markers:     []string{".cursor", ".cursorrules"},
		executables: []string{"cursor"},
		mappings: []Mapping{
			{Section: types.SectionMemory, Engine: EngineConcat, Path: ".cursorrules"},
			{Section: types.SectionMCP, Engine: EngineJSON, Path: ".cursor/mcp.json", JSONKind: merge.JSONWrapped, WrapperKey: "mcpServers"},
			{Section: types.SectionHooks, Engine: EngineJSON, Path: ".cursor/hooks.json", JSONKind: merge.JSONEntries},
			{
				Section:   types.SectionRules,
				Engine:    EngineOneToOne,
				Path:      ".cursor/rules",
				Rename:    cursorRuleName,
				Transform: cursorRule,
				Restore:   func(name string) string { return content.ReplaceExt(name, ".md") },
			},
			{Section: types.SectionCommands, Engine: EngineOneToOne, Path: ".cursor/commands"},
			{Section: types.SectionAgents, Engine: EngineOneToOne, Path: ".cursor/agents"},
			{Section: types.SectionSkills, Engine: EngineOneToOne, Path: ".cursor/skills"},
		},
	}}
}

func cursorRuleName(name string) string {
	return content.ReplaceExt(content.RemoveSuffixBeforeExt(name, "instructions"), ".mdc")
}

// cursorRule accepts rules written for Copilot (applyTo) as well as native ones
func cursorRule(text string) (string, error) {
	text = content.ConvertFrontmatterKey(text, "applyTo", "globs")
	return content.EnsureFrontmatter(text, cursorRuleMeta{AlwaysApply: true})
}
