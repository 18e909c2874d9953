// Package filesystem provides filesystem implementations for aidot.
//
// This package contains implementations of the types.FS interface (the
// real OS filesystem and an afero-backed one used by tests) plus the
// helpers every writer shares, such as atomic file replacement.
package filesystem
