// Package config loads fcheck settings: built-in defaults, then an optional
// TOML file, then the environment. Command-line flags are applied last by
// the caller.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

const (
	EnvLogLevel = "FCHECK_LOG_LEVEL"
	EnvDebug    = "FCHECK_DEBUG"
)

// Mkfs holds the defaults for new images.
type Mkfs struct {
	Size    uint64 `toml:"size"`
	Ninodes uint64 `toml:"ninodes"`
}

type Config struct {
	// LogLevel is a logrus level name such as debug, info, warn or error.
	LogLevel string `toml:"log_level"`
	// Debug is the util.DPrintf threshold; 0 disables tracing.
	Debug uint64 `toml:"debug"`
	Mkfs  Mkfs   `toml:"mkfs"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Mkfs: Mkfs{
			Size:    1024,
			Ninodes: 200,
		},
	}
}

// Load returns the defaults overlaid with the file at path (if path is not
// empty) and then with the environment.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, c.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDebug); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = n
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Mkfs.Ninodes == 0 {
		return fmt.Errorf("mkfs.ninodes must be positive")
	}
	return nil
}
