package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configName is the file looked up in the working directory when -config
// is not given.
const configName = "luaulift.toml"

// Config is the luaulift.toml file.
type Config struct {
	Lift   LiftConfig   `toml:"lift"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// LiftConfig configures the lifter.
type LiftConfig struct {
	StrictFloat bool `toml:"strict_float"`
}

// OutputConfig configures the plain listing.
type OutputConfig struct {
	// Color is auto, always or never.
	Color    string `toml:"color"`
	IR       *bool  `toml:"ir"`
	Branches bool   `toml:"branches"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `toml:"level"`
}

func defaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Color: "auto"},
		Log:    LogConfig{Level: "warn"},
	}
}

// ShowIR reports whether lifted statements are printed. Defaults to true.
func (c *Config) ShowIR() bool {
	return c.Output.IR == nil || *c.Output.IR
}

// loadConfig reads path, or luaulift.toml in dir when path is empty.
// A missing default file yields the defaults.
func loadConfig(path, dir string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, configName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return parseConfig(data, path)
}

func parseConfig(data []byte, path string) (*Config, error) {
	c := defaultConfig()
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("%s: output.color must be auto, always or never, got %q", path, c.Output.Color)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("%s: log.level must be debug, info, warn or error, got %q", path, c.Log.Level)
	}

	c.Path = path
	return c, nil
}
