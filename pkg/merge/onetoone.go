package merge

import (
	"path"

	"github.com/arthur-debert/aidot/pkg/content"
	"github.com/arthur-debert/aidot/pkg/types"
)

// OneToOne copies every file of a section into a destination directory
type OneToOne struct {
	Section types.Section
	// Dir is the slash-separated destination directory relative to the target; "" is the target itself
	Dir string
	// Rename optionally transforms the section-relative file name
	Rename func(name string) string
	// Transform optionally rewrites the file content
	Transform func(text string) (string, error)
}

// Plan returns one write per file, in input order. The merge strategy does
// not apply: each destination holds exactly one preset file.
func (e OneToOne) Plan(files []types.PresetFile) ([]Write, error) {
	writes := make([]Write, 0, len(files))
	for _, f := range files {
		name := content.StripSectionPrefix(f.RelativePath, string(e.Section))
		if e.Rename != nil {
			name = e.Rename(name)
		}

		text := f.Content
		if e.Transform != nil {
			var err error
			if text, err = e.Transform(text); err != nil {
				return nil, err
			}
		}

		writes = append(writes, Write{
			Display: joinDisplay(e.Dir, name),
			Section: string(e.Section),
			Content: text,
		})
	}
	return writes, nil
}

func joinDisplay(dir, name string) string {
	if dir == "" {
		return path.Clean(name)
	}
	return path.Join(dir, name)
}
