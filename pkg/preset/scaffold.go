package preset

import (
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/types"
)

const configHeader = "# aidot preset configuration\n# Each table declares a section; remove the ones you do not use.\n\n"

// configDocument fixes the table order of a rendered config file
type configDocument struct {
	Metadata Metadata       `toml:"metadata"`
	Rules    *SectionConfig `toml:"rules,omitempty"`
	Memory   *SectionConfig `toml:"memory,omitempty"`
	Commands *SectionConfig `toml:"commands,omitempty"`
	MCP      *SectionConfig `toml:"mcp,omitempty"`
	Hooks    *SectionConfig `toml:"hooks,omitempty"`
	Agents   *SectionConfig `toml:"agents,omitempty"`
	Skills   *SectionConfig `toml:"skills,omitempty"`
	Settings *SectionConfig `toml:"settings,omitempty"`
	Root     *SectionConfig `toml:"root,omitempty"`
}

// RenderConfig renders cfg as a .aidot-config.toml document
func RenderConfig(cfg *Config) ([]byte, error) {
	doc := configDocument{Metadata: cfg.Metadata}
	section := func(name types.Section) *SectionConfig {
		if sc, ok := cfg.Sections[name]; ok {
			return &sc
		}
		return nil
	}
	doc.Rules = section(types.SectionRules)
	doc.Memory = section(types.SectionMemory)
	doc.Commands = section(types.SectionCommands)
	doc.MCP = section(types.SectionMCP)
	doc.Hooks = section(types.SectionHooks)
	doc.Agents = section(types.SectionAgents)
	doc.Skills = section(types.SectionSkills)
	doc.Settings = section(types.SectionSettings)
	doc.Root = section(types.SectionRoot)

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(configHeader), data...), nil
}

// DefaultConfig declares every section in its default directory
func DefaultConfig(p *types.Preset) *Config {
	cfg := &Config{
		Metadata: Metadata{Name: p.Name, Version: p.Version, Description: p.Description},
		Sections: make(map[types.Section]SectionConfig),
	}
	if cfg.Metadata.Version == "" {
		cfg.Metadata.Version = "0.1.0"
	}
	for _, name := range types.AllSections() {
		sc := SectionConfig{Directory: string(name)}
		switch name {
		case types.SectionMemory, types.SectionMCP, types.SectionHooks, types.SectionSettings:
			sc.MergeStrategy = p.Strategy(name)
		}
		cfg.Sections[name] = sc
	}
	return cfg
}

// Write stores p as a preset directory at dir: one directory per section,
// the preset files, a config file and a README when none exists. It refuses
// to replace an existing config unless force is set. The written paths are
// returned relative to dir.
func Write(fsys types.FS, dir string, p *types.Preset, force bool) ([]string, error) {
	logger := logging.GetLogger("preset")

	configPath := filepath.Join(dir, ConfigFileName)
	if filesystem.Exists(fsys, configPath) && !force {
		return nil, aierrors.Newf(aierrors.ErrAlreadyExists, "%s already exists in %s", ConfigFileName, dir).
			WithDetail("path", configPath)
	}

	for _, name := range types.AllSections() {
		if err := fsys.MkdirAll(filepath.Join(dir, string(name)), filesystem.DirPerm); err != nil {
			return nil, aierrors.Wrapf(err, aierrors.ErrDirCreate, "cannot create %s", name)
		}
	}

	var written []string
	for _, section := range p.Sections {
		for _, f := range section.Files {
			if err := filesystem.WriteAtomic(fsys, filepath.Join(dir, filepath.FromSlash(f.RelativePath)), []byte(f.Content)); err != nil {
				return written, aierrors.Wrapf(err, aierrors.ErrFileWrite, "cannot write %s", f.RelativePath)
			}
			written = append(written, f.RelativePath)
		}
	}

	data, err := RenderConfig(DefaultConfig(p))
	if err != nil {
		return written, aierrors.Wrap(err, aierrors.ErrInternal, "cannot render preset config")
	}
	if err := filesystem.WriteAtomic(fsys, configPath, data); err != nil {
		return written, aierrors.Wrapf(err, aierrors.ErrFileWrite, "cannot write %s", ConfigFileName)
	}
	written = append(written, ConfigFileName)

	readme := filepath.Join(dir, "README.md")
	if !filesystem.Exists(fsys, readme) {
		if err := filesystem.WriteAtomic(fsys, readme, []byte(renderReadme(p.Name))); err != nil {
			return written, aierrors.Wrap(err, aierrors.ErrFileWrite, "cannot write README.md")
		}
		written = append(written, "README.md")
	}

	logger.Info().Str("dir", dir).Int("files", len(written)).Msg("Preset written")
	return written, nil
}

// Scaffold creates an empty preset named after dir
func Scaffold(fsys types.FS, dir string, force bool) ([]string, error) {
	return Write(fsys, dir, &types.Preset{Name: filepath.Base(dir)}, force)
}

func renderReadme(name string) string {
	return fmt.Sprintf(`# %s

An aidot preset. Each directory holds one section:

- rules/     project rules and instructions
- memory/    always-on context, concatenated per tool
- commands/  slash commands and prompts
- mcp/       one JSON file per MCP server, keyed by file name
- hooks/     one JSON file per hook, keyed by file name
- agents/    sub-agent definitions
- skills/    skill folders
- settings/  JSON merged into the tool settings
- root/      files copied to the project root

Apply it with:

    aidot pull <path-or-url>
`, name)
}
