package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/aidot/pkg/types"
)

const (
	// DirPerm is used for every directory aidot creates
	DirPerm fs.FileMode = 0755
	// FilePerm is used for every file aidot writes
	FilePerm fs.FileMode = 0644
)

// Exists reports whether name exists. Errors other than not-exist count as existing.
func Exists(fsys types.FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// IsDir reports whether name exists and is a directory
func IsDir(fsys types.FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

// TempSuffix marks the temporary siblings written by WriteAtomic
const TempSuffix = ".aidot-tmp"

// maxLinkHops bounds symlink resolution
const maxLinkHops = 40

// WriteAtomic writes data next to name and renames it into place, so a
// failed write never leaves a truncated destination. Parent directories
// are created as needed. When name is a symlink the file it points to is
// replaced and the link is kept. An existing file keeps its permission bits.
func WriteAtomic(fsys types.FS, name string, data []byte) error {
	target, err := ResolveLinks(fsys, name)
	if err != nil {
		return err
	}

	perm := FilePerm
	if info, err := fsys.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(target)
	if err := fsys.MkdirAll(dir, DirPerm); err != nil {
		return err
	}

	tmp := filepath.Join(dir, "."+filepath.Base(target)+TempSuffix)
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	// WriteFile is subject to the umask
	if err := fsys.Chmod(tmp, perm); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	if err := fsys.Rename(tmp, target); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

// ResolveLinks follows symlinks at name until it reaches a regular file or
// a path that does not exist yet, which a dangling link points to.
func ResolveLinks(fsys types.FS, name string) (string, error) {
	current := name
	for i := 0; i < maxLinkHops; i++ {
		info, err := fsys.Lstat(current)
		if errors.Is(err, fs.ErrNotExist) {
			return current, nil
		}
		if err != nil {
			return "", err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			return current, nil
		}
		link, err := fsys.Readlink(current)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(current), link)
		}
		current = link
	}
	return "", &fs.PathError{Op: "resolve", Path: name, Err: errors.New("too many levels of symbolic links")}
}

// WalkFiles returns the regular files below root as slash-separated paths
// relative to root, sorted. Entries for which skip returns true are not
// descended into or returned.
func WalkFiles(fsys types.FS, root string, skip func(name string, isDir bool) bool) ([]string, error) {
	var out []string
	var walk func(dir, rel string) error
	walk = func(dir, rel string) error {
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			name := entry.Name()
			if skip != nil && skip(name, entry.IsDir()) {
				continue
			}
			childRel := name
			if rel != "" {
				childRel = rel + "/" + name
			}
			if entry.IsDir() {
				if err := walk(filepath.Join(dir, name), childRel); err != nil {
					return err
				}
				continue
			}
			out = append(out, childRel)
		}
		return nil
	}

	if err := walk(root, ""); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
