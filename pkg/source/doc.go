// Package source turns the preset argument of a command into a local
// directory.
//
// An argument is tried, in order, as an existing directory, as a
// registered repository name (optionally followed by "/subdir"), and as a
// git URL. Git sources are cloned into the cache directory on first use
// and updated afterwards.
package source
