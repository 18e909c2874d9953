package adapters

import (
	"path/filepath"

	"github.com/arthur-debert/aidot/pkg/conflict"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/merge"
	"github.com/arthur-debert/aidot/pkg/types"
)

// Engine selects the merge engine of a mapping
type Engine int

const (
	EngineOneToOne Engine = iota
	EngineConcat
	EngineJSON
)

// Mapping routes one section to a destination
type Mapping struct {
	Section types.Section
	Engine  Engine
	// Path is the destination directory for one-to-one sections and the
	// destination file otherwise, slash-separated and relative to the target
	Path string

	// JSON only
	JSONKind   merge.JSONKind
	WrapperKey string

	// One-to-one only
	Rename    func(name string) string
	Transform func(text string) (string, error)

	// Restore and Revert undo Rename and Transform when a preset is
	// extracted from an existing project
	Restore func(name string) string
	Revert  func(text string) string
}

// layout is the table-driven implementation shared by every adapter
type layout struct {
	name        string
	id          string
	always      bool
	markers     []string
	executables []string
	mappings    []Mapping
}

func (l *layout) Name() string { return l.name }
func (l *layout) ID() string   { return l.id }

func (l *layout) Supports(section types.Section) bool {
	for _, m := range l.mappings {
		if m.Section == section {
			return true
		}
	}
	return false
}

// Mappings returns the adapter's section table
func (l *layout) Mappings() []Mapping {
	return append([]Mapping(nil), l.mappings...)
}

func (l *layout) Detect(env *Env, targetDir string) bool {
	if l.always {
		return true
	}
	for _, marker := range l.markers {
		if filesystem.Exists(env.FS, filepath.Join(targetDir, filepath.FromSlash(marker))) {
			return true
		}
	}
	if env.LookPath != nil {
		for _, exe := range l.executables {
			if _, err := env.LookPath(exe); err == nil {
				return true
			}
		}
	}
	return false
}

// Markers returns the marker paths that exist below targetDir
func (l *layout) Markers(env *Env, targetDir string) []string {
	var found []string
	for _, marker := range l.markers {
		if filesystem.Exists(env.FS, filepath.Join(targetDir, filepath.FromSlash(marker))) {
			found = append(found, marker)
		}
	}
	return found
}

func (l *layout) Scan(env *Env, preset *types.Preset, targetDir string) (*types.ScanResult, error) {
	logger := logging.GetLogger("adapters").With().Str("adapter", l.name).Logger()
	result := &types.ScanResult{Adapter: l.name}

	writes, err := l.plan(env, preset, targetDir)
	if err != nil {
		return result, err
	}
	for _, w := range writes {
		change, err := merge.Classify(env.FS, targetDir, w)
		if err != nil {
			return result, err
		}
		result.Add(change)
	}

	logger.Debug().Int("changes", len(result.Changes)).Msg("Scan complete")
	return result, nil
}

func (l *layout) Apply(env *Env, preset *types.Preset, targetDir string, mode *conflict.Mode) (*types.ApplyResult, error) {
	logger := logging.GetLogger("adapters").With().Str("adapter", l.name).Logger()
	result := &types.ApplyResult{}

	writes, err := l.plan(env, preset, targetDir)
	if err != nil {
		return result, err
	}

	writer := &merge.Writer{FS: env.FS, Console: env.Console}
	for _, w := range writes {
		if err := writer.Apply(targetDir, w, mode, result); err != nil {
			return result, err
		}
	}

	logger.Info().
		Int("created", len(result.Created)).
		Int("updated", len(result.Updated)).
		Int("skipped", len(result.Skipped)).
		Int("unchanged", len(result.Unchanged)).
		Msg("Apply complete")
	return result, nil
}

// plan computes every write for the preset: merged documents in table
// order first, then one-to-one copies in table order.
func (l *layout) plan(env *Env, preset *types.Preset, targetDir string) ([]merge.Write, error) {
	var writes []merge.Write
	planned := make(map[string]bool)

	for i, m := range l.mappings {
		switch m.Engine {
		case EngineConcat:
			w, err := merge.Concat{Section: m.Section, File: m.Path}.
				Plan(env.FS, targetDir, preset.Files(m.Section), preset.Strategy(m.Section))
			if err != nil {
				return nil, err
			}
			if w != nil {
				writes = append(writes, *w)
			}

		case EngineJSON:
			if planned[m.Path] {
				continue
			}
			planned[m.Path] = true

			var parts []merge.JSONPart
			for _, other := range l.mappings[i:] {
				if other.Engine != EngineJSON || other.Path != m.Path {
					continue
				}
				parts = append(parts, merge.JSONPart{
					Section:    other.Section,
					Kind:       other.JSONKind,
					WrapperKey: other.WrapperKey,
					Strategy:   preset.Strategy(other.Section),
					Files:      preset.Files(other.Section),
				})
			}
			w, err := merge.KeyedJSON{File: m.Path}.Plan(env.FS, targetDir, parts)
			if err != nil {
				return nil, err
			}
			if w != nil {
				writes = append(writes, *w)
			}
		}
	}

	for _, m := range l.mappings {
		if m.Engine != EngineOneToOne {
			continue
		}
		ws, err := merge.OneToOne{
			Section:   m.Section,
			Dir:       m.Path,
			Rename:    m.Rename,
			Transform: m.Transform,
		}.Plan(preset.Files(m.Section))
		if err != nil {
			return nil, err
		}
		writes = append(writes, ws...)
	}

	return writes, nil
}
