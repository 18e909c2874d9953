package merge

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/aidot/pkg/content"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/types"
)

// Separator joins concatenated documents
const Separator = "\n\n---\n\n"

// Concat joins every file of a section into one document
type Concat struct {
	Section types.Section
	// File is the slash-separated destination relative to the target
	File string
}

// Plan returns the single write for the section, or nil when it has no files.
//
// Under Replace the document is the joined preset files. Under Accumulate an
// existing destination is kept and the joined files are appended after a
// separator, unless the destination already ends with them.
func (e Concat) Plan(fsys types.FS, targetDir string, files []types.PresetFile, strategy types.MergeStrategy) (*Write, error) {
	if len(files) == 0 {
		return nil, nil
	}

	parts := make([]string, len(files))
	for i, f := range files {
		parts[i] = f.Content
	}
	blob := strings.Join(parts, Separator)

	w := &Write{Display: e.File, Section: string(e.Section), Content: blob}
	if strategy == types.Replace {
		return w, nil
	}

	data, ok, err := readExisting(fsys, w.Target(targetDir))
	if err != nil {
		return nil, aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot read %s", e.File)
	}
	if ok {
		w.Content = Accumulate(string(data), blob)
	}
	return w, nil
}

// Accumulate appends addition to existing after a separator. It returns
// existing unchanged when addition is blank or already its tail.
func Accumulate(existing, addition string) string {
	normExisting := content.Normalize(existing)
	normAddition := content.Normalize(addition)

	switch {
	case normAddition == "", normExisting == normAddition:
		return existing
	case strings.HasSuffix(normExisting, Separator+normAddition):
		return existing
	case normExisting == "":
		return addition
	}
	return strings.TrimRightFunc(existing, unicode.IsSpace) + Separator + addition
}
