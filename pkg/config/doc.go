// Package config handles aidot's global configuration: the registry of
// preset repositories, user settings and the pull history.
//
// Configuration is layered with koanf: embedded defaults, then the user's
// config.toml in the XDG config directory, then AIDOT_* environment
// variables. Save writes the file back with go-toml.
package config
