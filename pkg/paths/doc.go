// Package paths provides centralized path handling for aidot.
//
// It follows the XDG Base Directory specification for everything aidot keeps
// outside of a project: the global configuration (repository registry), the
// cache of cloned preset repositories and the log file.
//
// # Environment Variables
//
//   - AIDOT_CONFIG_DIR: Override XDG config directory (default: $XDG_CONFIG_HOME/aidot)
//   - AIDOT_CACHE_DIR: Override XDG cache directory (default: $XDG_CACHE_HOME/aidot)
//   - AIDOT_STATE_DIR: Override XDG state directory (default: $XDG_STATE_HOME/aidot)
package paths
