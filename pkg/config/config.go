package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/paths"
)

// EnvPrefix marks environment variables that override settings
const EnvPrefix = "AIDOT_"

// Settings are user preferences
type Settings struct {
	Interactive  bool     `koanf:"interactive" toml:"interactive"`
	DefaultTools []string `koanf:"default_tools" toml:"default_tools"`
	HistoryLimit int      `koanf:"history_limit" toml:"history_limit"`
}

// Config is the global configuration file
type Config struct {
	Settings     Settings       `koanf:"settings" toml:"settings"`
	Repositories []Repository   `koanf:"repositories" toml:"repositories,omitempty"`
	History      []HistoryEntry `koanf:"history" toml:"history,omitempty"`

	path string
}

// envSettings are the settings that may be overridden from the environment
var envSettings = map[string]bool{
	"interactive":   true,
	"default_tools": true,
	"history_limit": true,
}

// Load reads the configuration from the default location
func Load(overrides ...map[string]interface{}) (*Config, error) {
	return LoadFrom(paths.New().ConfigFile(), overrides...)
}

// LoadFrom reads the configuration file at path, which may not exist yet.
// Overrides are flat dotted keys ("settings.interactive") applied last,
// typically from command line flags.
func LoadFrom(path string, overrides ...map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config if it exists
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, aierrors.Wrapf(err, aierrors.ErrConfigParse, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user config")
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if !envSettings[key] {
			return ""
		}
		return "settings." + key
	}), nil)
	if err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command line overrides
	for _, o := range overrides {
		if err := k.Load(confmap.Provider(o, "."), nil); err != nil {
			return nil, aierrors.Wrap(err, aierrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	cfg := &Config{path: path}
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				sourceTypeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 6. Post-process
	for i := range cfg.Repositories {
		if cfg.Repositories[i].SourceType == "" {
			cfg.Repositories[i].SourceType = InferSourceType(cfg.Repositories[i].URL)
		}
	}

	return cfg, nil
}

// Path returns the file the configuration is saved to
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to its file
func (c *Config) Save() error {
	logger := logging.GetLogger("config")
	data, err := gotoml.Marshal(c)
	if err != nil {
		return aierrors.Wrap(err, aierrors.ErrConfigSave, "failed to render configuration")
	}
	if err := filesystem.WriteAtomic(filesystem.NewOS(), c.path, data); err != nil {
		return aierrors.Wrapf(err, aierrors.ErrConfigSave, "failed to write %s", c.path)
	}
	logger.Debug().Str("path", c.path).Msg("Configuration saved")
	return nil
}
