package preset

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"

	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/types"
)

// ConfigFileName is the preset description file at the preset root
const ConfigFileName = ".aidot-config.toml"

// Metadata describes a preset
type Metadata struct {
	Name        string `koanf:"name" toml:"name"`
	Version     string `koanf:"version" toml:"version"`
	Description string `koanf:"description" toml:"description,omitempty"`
}

// SectionConfig is the per-section table of the config file
type SectionConfig struct {
	// Directory defaults to the section name
	Directory string `koanf:"directory" toml:"directory,omitempty"`
	// Files limits the section to the listed files
	Files         []string            `koanf:"files" toml:"files,omitempty"`
	MergeStrategy types.MergeStrategy `koanf:"merge_strategy" toml:"merge_strategy,omitempty"`
}

// Config is a parsed .aidot-config.toml
type Config struct {
	Metadata Metadata
	Sections map[types.Section]SectionConfig
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// ParseConfig decodes the content of a preset config file
func ParseConfig(data []byte) (*Config, error) {
	logger := logging.GetLogger("preset")

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return nil, aierrors.Wrap(err, aierrors.ErrPresetParse, "invalid "+ConfigFileName)
	}

	cfg := &Config{Sections: make(map[types.Section]SectionConfig)}
	if err := unmarshal(k, "metadata", &cfg.Metadata); err != nil {
		return nil, err
	}

	raw := k.Raw()
	for key := range raw {
		if key != "metadata" && !types.Section(key).IsKnown() {
			logger.Warn().Str("section", key).Msg("Ignoring unknown section in preset config")
		}
	}

	for _, name := range types.AllSections() {
		if _, declared := raw[string(name)]; !declared {
			continue
		}
		var sc SectionConfig
		if err := unmarshal(k, string(name), &sc); err != nil {
			return nil, err
		}
		cfg.Sections[name] = sc
	}

	return cfg, nil
}

func unmarshal(k *koanf.Koanf, path string, out interface{}) error {
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           out,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mergeStrategyHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf(path, out, conf); err != nil {
		return aierrors.Wrapf(err, aierrors.ErrPresetParse, "invalid [%s] table", path)
	}
	return nil
}

func mergeStrategyHookFunc() mapstructure.DecodeHookFunc {
	strategyType := reflect.TypeOf(types.MergeStrategy(""))
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != strategyType {
			return data, nil
		}
		return types.ParseMergeStrategy(reflect.ValueOf(data).String())
	}
}

// directoryFor returns the slash-separated section directory
func (sc SectionConfig) directoryFor(name types.Section) string {
	dir := strings.Trim(strings.ReplaceAll(sc.Directory, "\\", "/"), "/")
	if dir == "" || dir == "." {
		return string(name)
	}
	return dir
}
