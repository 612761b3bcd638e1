// Package config loads the optional wires.yaml settings file.
//
// Config file locations (priority order):
//  1. $WIRES_CONFIG
//  2. ./wires.yaml
//  3. $XDG_CONFIG_HOME/wires/config.yaml
//  4. ~/.config/wires/config.yaml
//
// Command line flags take precedence over anything read here.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pborges/wires/internal/report"
)

type Config struct {
	// Target is the wire the override and watch commands report on.
	Target string `yaml:"target"`
	// Override is the wire forced to the first result of Target.
	Override string      `yaml:"override"`
	Radix    string      `yaml:"radix"`
	LogLevel string      `yaml:"log_level"`
	Watch    WatchConfig `yaml:"watch"`
}

type WatchConfig struct {
	Debounce Duration `yaml:"debounce"`
}

// Duration reads Go duration strings such as "300ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

func Default() *Config {
	return &Config{
		Target:   "a",
		Override: "b",
		Radix:    string(report.RadixDec),
		LogLevel: "warn",
		Watch:    WatchConfig{Debounce: Duration(300 * time.Millisecond)},
	}
}

// Load finds and loads the config file, or returns defaults if none is found.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, "", nil
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if _, err := report.ParseRadix(cfg.Radix); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Target == "" {
		c.Target = def.Target
	}
	if c.Override == "" {
		c.Override = def.Override
	}
	if c.Radix == "" {
		c.Radix = def.Radix
	}
	if c.LogLevel == "" {
		if env := os.Getenv(EnvLogLevel); env != "" {
			c.LogLevel = env
		} else {
			c.LogLevel = def.LogLevel
		}
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = def.Watch.Debounce
	}
}
