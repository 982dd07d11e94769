// Package config loads the spawncheck settings from an optional YAML file, the
// SPAWNCHECK_* environment and the command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/githubnext/spawncheck/pkg/constants"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings shared by all commands
type Config struct {
	// OutputDir receives the _FIXED.json and _FIX_REPORT.txt files
	OutputDir string `mapstructure:"output_dir"`
	// Apply writes the default of every missing field into the fixed file
	Apply bool `mapstructure:"apply"`
	// Strict also reports fields the schema does not declare
	Strict  bool `mapstructure:"strict"`
	Verbose bool `mapstructure:"verbose"`
	// Concurrency bounds the number of files checked at once by the check command
	Concurrency   int           `mapstructure:"concurrency"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"output-dir":     "output_dir",
	"apply":          "apply",
	"strict":         "strict",
	"verbose":        "verbose",
	"concurrency":    "concurrency",
	"watch-debounce": "watch_debounce",
}

// Validate checks the invariants of a loaded configuration
func (c Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, "output_dir must not be empty")
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Sprintf("concurrency must be >= 1, got %d", c.Concurrency))
	}
	if c.WatchDebounce < 0 {
		errs = append(errs, "watch_debounce must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads the configuration. path names an explicit config file; when it is
// empty, .spawncheck.yaml in the working directory is used if present. flags may
// be nil; only the flags listed in flagKeys are bound.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := bindFlags(v, flags); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName(strings.TrimSuffix(constants.ConfigFileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("apply", false)
	v.SetDefault("strict", false)
	v.SetDefault("verbose", false)
	v.SetDefault("concurrency", constants.MaxConcurrentChecks)
	v.SetDefault("watch_debounce", "300ms")
}
