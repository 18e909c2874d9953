package source

import (
	"path/filepath"
	"sort"

	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/paths"
	"github.com/arthur-debert/aidot/pkg/types"
)

// CacheEntry is one cached clone
type CacheEntry struct {
	Name string
	Dir  string
}

// ListCache returns the cached clones sorted by name
func ListCache(fsys types.FS, p paths.Paths) ([]CacheEntry, error) {
	root := p.ReposCacheDir()
	if !filesystem.IsDir(fsys, root) {
		return nil, nil
	}
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrFileRead, "cannot list cache")
	}
	var out []CacheEntry
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, CacheEntry{Name: e.Name(), Dir: filepath.Join(root, e.Name())})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ClearCache removes every cached clone and returns how many there were
func ClearCache(fsys types.FS, p paths.Paths) (int, error) {
	entries, err := ListCache(fsys, p)
	if err != nil {
		return 0, err
	}
	if err := fsys.RemoveAll(p.ReposCacheDir()); err != nil {
		return 0, aierrors.Wrap(err, aierrors.ErrFileWrite, "cannot clear cache")
	}
	return len(entries), nil
}
