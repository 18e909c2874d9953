package merge

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/aidot/pkg/conflict"
	"github.com/arthur-debert/aidot/pkg/content"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/types"
)

// Write is one planned destination file
type Write struct {
	// Display is the slash-separated path relative to the target directory
	Display string
	Section string
	Content string
}

// Target returns the host path of w below targetDir
func (w Write) Target(targetDir string) string {
	return filepath.Join(targetDir, filepath.FromSlash(w.Display))
}

// Classify reports what applying w would do, without writing anything
func Classify(fsys types.FS, targetDir string, w Write) (types.PendingChange, error) {
	preview := w.Content
	change := types.PendingChange{
		Path:           w.Display,
		Section:        w.Section,
		PreviewContent: &preview,
	}

	exists, err := exists(fsys, w.Target(targetDir))
	if err != nil {
		return change, aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot inspect %s", w.Display)
	}
	if !exists {
		return change, nil
	}

	change.IsConflict = true
	if data, err := fsys.ReadFile(w.Target(targetDir)); err == nil {
		change.IsIdentical = content.Equivalent(string(data), w.Content)
	}
	return change, nil
}

// Writer performs planned writes, resolving collisions through a conflict mode
type Writer struct {
	FS      types.FS
	Console conflict.Console
}

// Apply writes w below targetDir and records the outcome in result.
// Existing files whose content already matches are left untouched.
func (wr *Writer) Apply(targetDir string, w Write, mode *conflict.Mode, result *types.ApplyResult) error {
	logger := logging.GetLogger("merge")
	path := w.Target(targetDir)

	exists, err := exists(wr.FS, path)
	if err != nil {
		return aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot inspect %s", w.Display)
	}

	if !exists {
		if err := filesystem.WriteAtomic(wr.FS, path, []byte(w.Content)); err != nil {
			return aierrors.Wrapf(err, aierrors.ErrFileWrite, "cannot write %s", w.Display)
		}
		logger.Debug().Str("path", w.Display).Msg("Created")
		result.AddCreated(w.Display)
		return nil
	}

	var existing *string
	if data, err := wr.FS.ReadFile(path); err == nil {
		current := string(data)
		if content.Equivalent(current, w.Content) {
			result.AddUnchanged(w.Display)
			return nil
		}
		existing = &current
	}

	proposed := w.Content
	if !mode.Resolve(wr.Console, w.Display, existing, &proposed) {
		logger.Debug().Str("path", w.Display).Msg("Skipped existing file")
		result.AddSkipped(w.Display)
		return nil
	}

	if err := filesystem.WriteAtomic(wr.FS, path, []byte(w.Content)); err != nil {
		return aierrors.Wrapf(err, aierrors.ErrFileWrite, "cannot write %s", w.Display)
	}
	logger.Debug().Str("path", w.Display).Msg("Updated")
	result.AddUpdated(w.Display)
	return nil
}

func exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// readExisting returns the destination content, or ok=false when it does not exist
func readExisting(fsys types.FS, path string) (data []byte, ok bool, err error) {
	data, err = fsys.ReadFile(path)
	if err == nil {
		return data, true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	return nil, false, err
}
