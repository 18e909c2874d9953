// Package types defines the data shared by every layer of aidot: presets and
// their sections, the pending changes produced by a scan, the per-run apply
// result and the filesystem abstraction the engines write through.
package types
