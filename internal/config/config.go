// Package config loads the pds-generator configuration with viper: defaults,
// then an optional YAML file, then PDSGEN_* environment variables, then
// whatever the caller binds (command line flags).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"pds-generator/internal/dispatch"
	"pds-generator/internal/gen"
	"pds-generator/internal/logging"
)

// EnvPrefix prefixes the environment variables read by Load, with nested
// keys joined by "_": PDSGEN_ENTITY_TABLE_SIZE_POLICY.
const EnvPrefix = "PDSGEN"

// DefaultFile is the configuration file looked up in the working directory
// when none is given.
const DefaultFile = "pds-generator"

// WatchConfig configures generate --watch.
type WatchConfig struct {
	// Debounce is the quiet period after a schema change before regenerating.
	Debounce time.Duration `mapstructure:"debounce"`
}

// Config is the full configuration.
type Config struct {
	Gen         gen.Config                 `mapstructure:",squash"`
	EntityTable dispatch.EntityTableConfig `mapstructure:"entity_table"`
	ValueTable  dispatch.ValueTableConfig  `mapstructure:"value_table"`
	Log         logging.Config             `mapstructure:"log"`
	Watch       WatchConfig                `mapstructure:"watch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Gen:         gen.DefaultConfig(),
		EntityTable: dispatch.DefaultEntityTableConfig(),
		ValueTable:  dispatch.DefaultValueTableConfig(),
		Log:         logging.DefaultConfig(),
		Watch:       WatchConfig{Debounce: 200 * time.Millisecond},
	}
}

// defaults lists every key so AutomaticEnv sees it during Unmarshal.
func defaults() map[string]any {
	d := Default()

	return map[string]any{
		"output_dir":                 d.Gen.OutputDir,
		"import_path":                d.Gen.ImportPath,
		"runtime_import":             d.Gen.RuntimeImport,
		"default_version":            d.Gen.DefaultVersion,
		"read_only":                  d.Gen.ReadOnly,
		"entity_table.size_policy":   d.EntityTable.Policy.String(),
		"entity_table.fixed_size":    d.EntityTable.FixedSize,
		"value_table.size":           d.ValueTable.Size,
		"value_table.data_type_mult": d.ValueTable.DataTypeMult,
		"value_table.container_mult": d.ValueTable.ContainerMult,
		"log.level":                  d.Log.Level,
		"log.file":                   d.Log.File,
		"log.max_size":               d.Log.MaxSize,
		"log.max_backups":            d.Log.MaxBackups,
		"log.max_age":                d.Log.MaxAge,
		"log.compress":               d.Log.Compress,
		"log.dev":                    d.Log.Dev,
		"watch.debounce":             d.Watch.Debounce.String(),
	}
}

// New returns a viper instance holding the defaults and reading the
// environment. Callers bind flags to it before Load.
func New() *viper.Viper {
	v := viper.New()

	for k, val := range defaults() {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads file into v, or pds-generator.yaml from the working directory
// when file is empty; a missing default file is not an error. It then
// decodes the merged settings.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(DefaultFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Decode(v)
}

// Decode decodes the settings of v without reading a file.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config

	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks values the decoder cannot.
func (c Config) Validate() error {
	if c.Gen.OutputDir == "" {
		return errors.New("config: output_dir is empty")
	}

	if c.Gen.RuntimeImport == "" {
		return errors.New("config: runtime_import is empty")
	}

	if c.EntityTable.Policy == dispatch.SizeFixed && c.EntityTable.FixedSize < 0 {
		return fmt.Errorf("config: entity_table.fixed_size is negative: %d", c.EntityTable.FixedSize)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: watch.debounce is negative: %s", c.Watch.Debounce)
	}

	return nil
}
