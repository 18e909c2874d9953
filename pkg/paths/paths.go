package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	EnvConfigDir = "AIDOT_CONFIG_DIR"
	EnvCacheDir  = "AIDOT_CACHE_DIR"
	EnvStateDir  = "AIDOT_STATE_DIR"
)

// Fixed names inside the aidot directories
const (
	// DirName is the directory name used under every XDG base directory
	DirName = "aidot"

	// ConfigFileName is the global configuration file
	ConfigFileName = "config.toml"

	// ReposDir is the cache subdirectory holding cloned preset repositories
	ReposDir = "repos"

	// LogFileName is the name of the log file
	LogFileName = "aidot.log"
)

// Paths locates aidot's own files outside of any project
type Paths interface {
	ConfigDir() string
	CacheDir() string
	StateDir() string
	ConfigFile() string
	LogFile() string
	ReposCacheDir() string
	RepoCacheDir(name string) string
}

type paths struct {
	config string
	cache  string
	state  string
}

// New resolves the XDG directories, honouring the AIDOT_* overrides
func New() Paths {
	return &paths{
		config: dirFromEnv(EnvConfigDir, xdg.ConfigHome),
		cache:  dirFromEnv(EnvCacheDir, xdg.CacheHome),
		state:  dirFromEnv(EnvStateDir, xdg.StateHome),
	}
}

func dirFromEnv(env, base string) string {
	if dir := os.Getenv(env); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(base, DirName)
}

func (p *paths) ConfigDir() string  { return p.config }
func (p *paths) CacheDir() string   { return p.cache }
func (p *paths) StateDir() string   { return p.state }
func (p *paths) ConfigFile() string { return filepath.Join(p.config, ConfigFileName) }
func (p *paths) LogFile() string    { return filepath.Join(p.state, LogFileName) }

// ReposCacheDir holds every cached repository
func (p *paths) ReposCacheDir() string { return filepath.Join(p.cache, ReposDir) }

// RepoCacheDir returns the checkout directory for a cached repository.
// Path separators in name are flattened so every repository gets one level.
func (p *paths) RepoCacheDir(name string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(name)
	return filepath.Join(p.ReposCacheDir(), safe)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ToSlash renders path relative to base in slash form for display.
// Paths outside base are returned in slash form unchanged.
func ToSlash(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
