package adapters

import (
	"github.com/arthur-debert/aidot/pkg/merge"
	"github.com/arthur-debert/aidot/pkg/types"
)

// ClaudeCode writes everything below .claude/. Settings and MCP servers
// share .claude/settings.local.json.
type ClaudeCode struct{ layout }

const claudeSettings = ".claude/settings.local.json"

func NewClaudeCode() *ClaudeCode {
	return &ClaudeCode{layout{
		name:        "Claude Code",
		id:          "claude",
		markers:     []string{".claude"},
		executables: []string{"claude"},
		mappings: []Mapping{
			{Section: types.SectionMemory, Engine: EngineConcat, Path: ".claude/CLAUDE.md"},
			{Section: types.SectionSettings, Engine: EngineJSON, Path: claudeSettings, JSONKind: merge.JSONFlat},
			{Section: types.SectionMCP, Engine: EngineJSON, Path: claudeSettings, JSONKind: merge.JSONWrapped, WrapperKey: "mcpServers"},
			{Section: types.SectionHooks, Engine: EngineJSON, Path: ".claude/hooks.json", JSONKind: merge.JSONEntries},
			{Section: types.SectionRules, Engine: EngineOneToOne, Path: ".claude/rules"},
			{Section: types.SectionCommands, Engine: EngineOneToOne, Path: ".claude/commands"},
			{Section: types.SectionAgents, Engine: EngineOneToOne, Path: ".claude/agents"},
			{Section: types.SectionSkills, Engine: EngineOneToOne, Path: ".claude/skills"},
		},
	}}
}
