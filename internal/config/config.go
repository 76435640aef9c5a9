// Package config loads the settings shared by the reckon commands from a
// TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the reckon commands.
type Config struct {
	// Degrees makes the trig operators read degrees. Radians when false.
	Degrees bool `toml:"degrees" yaml:"degrees"`
	// Addr is the listen address for reckon serve.
	Addr string `toml:"addr" yaml:"addr"`
	// LogLevel is the server log level (zerolog names).
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// Format selects the serve log format, text or json.
	Format string `toml:"format" yaml:"format"`
}

// Default returns the settings the commands start from.
func Default() *Config {
	return &Config{
		Degrees:  true,
		Addr:     ":8080",
		LogLevel: "info",
		Format:   "text",
	}
}

// Load reads path and overlays its values onto the defaults, so a file only
// names the settings it changes. The extension picks the format: .toml, or
// .yaml/.yml. Environment variables in path expand.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	return nil
}
