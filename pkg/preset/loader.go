package preset

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/types"
)

// ReadConfig reads the config file of the preset at dir. It returns nil
// without error when the preset has none.
func ReadConfig(fsys types.FS, dir string) (*Config, error) {
	data, err := fsys.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot read %s", ConfigFileName)
	}
	return ParseConfig(data)
}

// Load reads the preset rooted at dir
func Load(fsys types.FS, dir string) (*types.Preset, error) {
	logger := logging.GetLogger("preset")

	info, err := fsys.Stat(dir)
	if err != nil {
		return nil, aierrors.Wrapf(err, aierrors.ErrPresetNotFound, "preset not found at %s", dir)
	}
	if !info.IsDir() {
		return nil, aierrors.Newf(aierrors.ErrPresetInvalid, "preset %s is not a directory", dir)
	}

	cfg, err := ReadConfig(fsys, dir)
	if err != nil {
		return nil, err
	}

	preset := &types.Preset{Name: filepath.Base(dir), Root: dir}
	if cfg != nil {
		if cfg.Metadata.Name != "" {
			preset.Name = cfg.Metadata.Name
		}
		preset.Version = cfg.Metadata.Version
		preset.Description = cfg.Metadata.Description
	}

	for _, name := range types.AllSections() {
		var sc SectionConfig
		if cfg != nil {
			var declared bool
			if sc, declared = cfg.Sections[name]; !declared {
				continue
			}
		}

		files, err := loadSection(fsys, dir, name, sc)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			continue
		}

		strategy := sc.MergeStrategy
		if strategy == "" {
			strategy = types.Accumulate
		}
		preset.Sections = append(preset.Sections, types.SectionFiles{
			Name:     name,
			Strategy: strategy,
			Files:    files,
		})
		logger.Debug().Str("section", string(name)).Int("files", len(files)).Msg("Loaded section")
	}

	if preset.FileCount() == 0 {
		return nil, aierrors.Newf(aierrors.ErrPresetInvalid, "preset %s contains no files", dir).
			WithDetail("path", dir)
	}

	logger.Info().
		Str("preset", preset.Name).
		Int("sections", len(preset.Sections)).
		Int("files", preset.FileCount()).
		Msg("Preset loaded")
	return preset, nil
}

func loadSection(fsys types.FS, root string, name types.Section, sc SectionConfig) ([]types.PresetFile, error) {
	sectionDir := filepath.Join(root, filepath.FromSlash(sc.directoryFor(name)))
	if !filesystem.IsDir(fsys, sectionDir) {
		return nil, nil
	}

	rels, err := filesystem.WalkFiles(fsys, sectionDir, skipMetadata)
	if err != nil {
		return nil, aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot list section %s", name)
	}

	var files []types.PresetFile
	for _, rel := range rels {
		if !sc.includes(name, rel) {
			continue
		}
		data, err := fsys.ReadFile(filepath.Join(sectionDir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot read %s/%s", name, rel)
		}
		files = append(files, types.PresetFile{
			RelativePath: string(name) + "/" + rel,
			Content:      string(data),
		})
	}
	return files, nil
}

// includes reports whether rel, relative to the section directory, is
// selected. Listed names may be given relative to the preset root or to
// the section directory.
func (sc SectionConfig) includes(name types.Section, rel string) bool {
	if len(sc.Files) == 0 {
		return true
	}
	dir := sc.directoryFor(name)
	for _, listed := range sc.Files {
		listed = strings.TrimPrefix(strings.ReplaceAll(listed, "\\", "/"), "./")
		if listed == rel || listed == dir+"/"+rel {
			return true
		}
	}
	return false
}

// metadataDirs are version control directories never treated as preset content
var metadataDirs = map[string]bool{".git": true, ".hg": true, ".svn": true}

// skipMetadata drops the preset config, VCS directories, OS clutter and
// leftover temporary files. Other dotfiles are preset content.
func skipMetadata(name string, isDir bool) bool {
	if isDir {
		return metadataDirs[name]
	}
	return name == ConfigFileName || name == ".DS_Store" || strings.HasSuffix(name, filesystem.TempSuffix)
}
