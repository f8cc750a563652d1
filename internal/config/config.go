// Package config loads weft project configuration from weft.yaml, the
// environment, and built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full project configuration.
type Config struct {
	Generate Generate `mapstructure:"generate" yaml:"generate"`
	Serve    Serve    `mapstructure:"serve" yaml:"serve"`
	Watch    Watch    `mapstructure:"watch" yaml:"watch"`
}

// Generate configures which directories are compiled.
type Generate struct {
	Roots   []string `mapstructure:"roots" yaml:"roots"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// Serve configures the development server.
type Serve struct {
	Host   string `mapstructure:"host" yaml:"host"`
	Port   int    `mapstructure:"port" yaml:"port"`
	Static string `mapstructure:"static" yaml:"static"`
}

// Watch configures the file watcher.
type Watch struct {
	DebounceMS int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

// Debounce returns the watch debounce interval as a duration.
func (w Watch) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Generate: Generate{
			Roots:   []string{"."},
			Exclude: []string{"node_modules", ".git"},
		},
		Serve: Serve{
			Host:   "localhost",
			Port:   7332,
			Static: ".",
		},
		Watch: Watch{DebounceMS: 120},
	}
}

// Load reads configuration with the usual precedence: defaults, then the
// config file (the given path, or a weft.yaml found in the working
// directory), then WEFT_-prefixed environment variables such as
// WEFT_SERVE_PORT. A missing config file is not an error unless a path was
// given explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WEFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("weft")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("generate.roots", d.Generate.Roots)
	v.SetDefault("generate.exclude", d.Generate.Exclude)
	v.SetDefault("serve.host", d.Serve.Host)
	v.SetDefault("serve.port", d.Serve.Port)
	v.SetDefault("serve.static", d.Serve.Static)
	v.SetDefault("watch.debounce_ms", d.Watch.DebounceMS)
}

// WriteDefault writes the default configuration to path as YAML.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
