package preset

import (
	"encoding/json"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/aidot/pkg/adapters"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/jsonobj"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/merge"
	"github.com/arthur-debert/aidot/pkg/types"
)

// ExtractSource counts the files taken from one tool
type ExtractSource struct {
	Tool  string
	Files int
}

// rootFiles are project-root documents carried over into the root section
var rootFiles = []string{"AGENTS.md", "CLAUDE.md"}

// Extract builds a preset from the tool configuration already present in
// projectDir by running every adapter's mapping table backwards. When two
// tools produce the same preset path the first tool wins.
func Extract(fsys types.FS, projectDir string) (*types.Preset, []ExtractSource, error) {
	logger := logging.GetLogger("preset")
	x := &extractor{
		fsys:   fsys,
		dir:    projectDir,
		preset: &types.Preset{Name: filepath.Base(projectDir)},
		seen:   make(map[string]bool),
	}

	var sources []ExtractSource
	for _, a := range adapters.Tools() {
		before := x.preset.FileCount()
		for _, m := range a.Mappings() {
			if err := x.mapping(a, m); err != nil {
				return nil, nil, err
			}
		}
		if n := x.preset.FileCount() - before; n > 0 {
			sources = append(sources, ExtractSource{Tool: a.Name(), Files: n})
		}
	}

	before := x.preset.FileCount()
	for _, name := range rootFiles {
		if data, err := fsys.ReadFile(filepath.Join(projectDir, name)); err == nil {
			x.add(types.SectionRoot, name, string(data))
		}
	}
	if n := x.preset.FileCount() - before; n > 0 {
		sources = append(sources, ExtractSource{Tool: "Project", Files: n})
	}

	logger.Info().Int("files", x.preset.FileCount()).Int("tools", len(sources)).Msg("Extracted preset")
	return x.preset, sources, nil
}

type extractor struct {
	fsys   types.FS
	dir    string
	preset *types.Preset
	seen   map[string]bool
}

func (x *extractor) add(section types.Section, name, text string) {
	rel := string(section) + "/" + path.Clean(name)
	if x.seen[rel] {
		return
	}
	x.seen[rel] = true
	x.preset.AddFile(section, types.PresetFile{RelativePath: rel, Content: text})
}

func (x *extractor) host(rel string) string {
	return filepath.Join(x.dir, filepath.FromSlash(rel))
}

func (x *extractor) mapping(a adapters.Adapter, m adapters.Mapping) error {
	switch m.Engine {
	case adapters.EngineOneToOne:
		if m.Path == "" || !filesystem.IsDir(x.fsys, x.host(m.Path)) {
			return nil
		}
		rels, err := filesystem.WalkFiles(x.fsys, x.host(m.Path), skipHidden)
		if err != nil {
			return aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot list %s", m.Path)
		}
		for _, rel := range rels {
			data, err := x.fsys.ReadFile(x.host(m.Path + "/" + rel))
			if err != nil {
				return aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot read %s/%s", m.Path, rel)
			}
			name, text := rel, string(data)
			if m.Restore != nil {
				name = m.Restore(name)
			}
			if m.Revert != nil {
				text = m.Revert(text)
			}
			x.add(m.Section, name, text)
		}

	case adapters.EngineConcat:
		if data, err := x.fsys.ReadFile(x.host(m.Path)); err == nil {
			x.add(m.Section, a.ID()+".md", string(data))
		}

	case adapters.EngineJSON:
		data, err := x.fsys.ReadFile(x.host(m.Path))
		if err != nil {
			return nil
		}
		doc, err := jsonobj.Parse(data)
		if err != nil {
			logger := logging.GetLogger("preset")
			logger.Warn().Err(err).Str("file", m.Path).Msg("Skipping unparsable JSON")
			return nil
		}
		return x.json(a, m, doc)
	}
	return nil
}

func (x *extractor) json(a adapters.Adapter, m adapters.Mapping, doc *jsonobj.Object) error {
	switch m.JSONKind {
	case merge.JSONWrapped:
		wrapper, err := doc.Object(m.WrapperKey)
		if err != nil {
			return nil
		}
		return x.entries(m.Section, wrapper)

	case merge.JSONEntries:
		return x.entries(m.Section, doc)

	default:
		// flat documents share their file with wrapped sections; leave those keys out
		rest := jsonobj.New()
		rest.Merge(doc)
		for _, other := range a.Mappings() {
			if other.Engine == adapters.EngineJSON && other.Path == m.Path && other.JSONKind == merge.JSONWrapped {
				rest.Delete(other.WrapperKey)
			}
		}
		if rest.Len() == 0 {
			return nil
		}
		text, err := rest.Pretty()
		if err != nil {
			return aierrors.Wrapf(err, aierrors.ErrInternal, "cannot render %s", m.Path)
		}
		x.add(m.Section, a.ID()+".json", text)
	}
	return nil
}

func (x *extractor) entries(section types.Section, obj *jsonobj.Object) error {
	for _, key := range obj.Keys() {
		raw, _ := obj.Get(key)
		text, err := prettyRaw(raw)
		if err != nil {
			return aierrors.Wrapf(err, aierrors.ErrInternal, "cannot render %s entry %q", section, key)
		}
		x.add(section, key+".json", text)
	}
	return nil
}

func prettyRaw(raw json.RawMessage) (string, error) {
	if obj, err := jsonobj.Parse(raw); err == nil {
		return obj.Pretty()
	}
	return string(raw) + "\n", nil
}

func skipHidden(name string, _ bool) bool {
	return strings.HasPrefix(name, ".")
}
