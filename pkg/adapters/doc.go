// Package adapters maps preset sections onto the on-disk conventions of
// each supported AI coding tool.
//
// The set of adapters is closed and fixed at build time: Project (files
// copied to the project root), Claude Code, Cursor and GitHub Copilot. Each
// one is a mapping table from section to destination and merge engine; the
// engines and the conflict machine are shared. Sections an adapter has no
// mapping for are ignored.
//
// Every adapter plans merged documents (concatenated and JSON files) before
// one-to-one copies, so any prompt about a merged file comes first. Scan and
// Apply run the same plan; Scan only classifies it.
package adapters
