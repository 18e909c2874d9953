package types

import (
	"fmt"
	"strings"
)

// Section names a category of preset content
type Section string

const (
	SectionRules    Section = "rules"
	SectionMemory   Section = "memory"
	SectionCommands Section = "commands"
	SectionMCP      Section = "mcp"
	SectionHooks    Section = "hooks"
	SectionAgents   Section = "agents"
	SectionSkills   Section = "skills"
	SectionSettings Section = "settings"
	SectionRoot     Section = "root"
)

// AllSections returns every known section in canonical order
func AllSections() []Section {
	return []Section{
		SectionRules,
		SectionMemory,
		SectionCommands,
		SectionMCP,
		SectionHooks,
		SectionAgents,
		SectionSkills,
		SectionSettings,
		SectionRoot,
	}
}

// IsKnown reports whether s is one of AllSections
func (s Section) IsKnown() bool {
	for _, known := range AllSections() {
		if s == known {
			return true
		}
	}
	return false
}

// MergeStrategy governs whether new content grows or supersedes existing output
type MergeStrategy string

const (
	Accumulate MergeStrategy = "accumulate"
	Replace    MergeStrategy = "replace"
)

// ParseMergeStrategy maps a configuration value onto a MergeStrategy.
// The empty string selects Accumulate.
func ParseMergeStrategy(value string) (MergeStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "accumulate", "concat", "append":
		return Accumulate, nil
	case "replace", "overwrite":
		return Replace, nil
	default:
		return "", fmt.Errorf("unknown merge strategy %q (want accumulate or replace)", value)
	}
}

// PresetFile is one source file of a preset section.
// RelativePath is slash-separated and always starts with the section name.
type PresetFile struct {
	RelativePath string
	Content      string
}

// SectionFiles holds the files of one section and its merge strategy
type SectionFiles struct {
	Name     Section
	Strategy MergeStrategy
	Files    []PresetFile
}

// Preset is the tool-agnostic bundle being distributed
type Preset struct {
	Name        string
	Version     string
	Description string
	// Root is the directory the preset was loaded from, if any
	Root     string
	Sections []SectionFiles
}

// Section returns the named section, or nil when the preset has none
func (p *Preset) Section(name Section) *SectionFiles {
	for i := range p.Sections {
		if p.Sections[i].Name == name {
			return &p.Sections[i]
		}
	}
	return nil
}

// Files returns the files of the named section
func (p *Preset) Files(name Section) []PresetFile {
	if s := p.Section(name); s != nil {
		return s.Files
	}
	return nil
}

// Strategy returns the merge strategy of the named section, Accumulate by default
func (p *Preset) Strategy(name Section) MergeStrategy {
	if s := p.Section(name); s != nil && s.Strategy != "" {
		return s.Strategy
	}
	return Accumulate
}

// HasSection reports whether the named section holds at least one file
func (p *Preset) HasSection(name Section) bool {
	return len(p.Files(name)) > 0
}

// FileCount returns the number of files across all sections
func (p *Preset) FileCount() int {
	total := 0
	for _, s := range p.Sections {
		total += len(s.Files)
	}
	return total
}

// AddFile appends a file to the named section, creating the section on first use
func (p *Preset) AddFile(name Section, file PresetFile) {
	if s := p.Section(name); s != nil {
		s.Files = append(s.Files, file)
		return
	}
	p.Sections = append(p.Sections, SectionFiles{
		Name:     name,
		Strategy: Accumulate,
		Files:    []PresetFile{file},
	})
}
