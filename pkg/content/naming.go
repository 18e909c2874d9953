package content

import (
	"path"
	"strings"
)

// StripSectionPrefix removes the leading "<section>/" from a preset-relative path
func StripSectionPrefix(relativePath, section string) string {
	for _, sep := range []string{"/", "\\"} {
		if rest, ok := strings.CutPrefix(relativePath, section+sep); ok {
			return rest
		}
	}
	return relativePath
}

// AddSuffixBeforeExt inserts suffix before the markdown extension of the base
// name: "build.md" becomes "build.prompt.md". Names without a .md extension
// keep their full name and gain ".<suffix>.md".
func AddSuffixBeforeExt(name, suffix string) string {
	dir, base := path.Split(name)
	if stem, ok := strings.CutSuffix(base, ".md"); ok && stem != "" {
		return dir + stem + "." + suffix + ".md"
	}
	return dir + base + "." + suffix + ".md"
}

// RemoveSuffixBeforeExt reverses AddSuffixBeforeExt for ".<suffix>.md" names.
// Other names are returned unchanged.
func RemoveSuffixBeforeExt(name, suffix string) string {
	if stem, ok := strings.CutSuffix(name, "."+suffix+".md"); ok && path.Base(stem) != "" {
		return stem + ".md"
	}
	return name
}

// ReplaceExt swaps the extension of the base name, appending when there is none
func ReplaceExt(name, ext string) string {
	current := path.Ext(name)
	return strings.TrimSuffix(name, current) + ext
}

// Stem returns the base name without its last extension
func Stem(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}
