// Package content holds the text helpers shared by the merge engines and
// adapters: the comparison normalizer, file naming transforms, YAML
// frontmatter handling and unified diffs.
package content
