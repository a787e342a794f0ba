// Package config loads and validates the downloader configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig reports a configuration that is missing required fields.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything one run needs: where to write the archive, which
// headers to send with every request, and which pages to fetch.
type Config struct {
	DataDir string            `mapstructure:"datadir"`
	Headers map[string]string `mapstructure:"headers"`
	URLs    []string          `mapstructure:"urls"`
}

// Resolve locates the configuration file. The path is tried as given first;
// a relative path that does not resolve is retried under baseDir.
func Resolve(path, baseDir string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if !filepath.IsAbs(path) {
		candidate := filepath.Join(baseDir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no such config file: %s", path)
}

// Load reads a JSON configuration file from disk/environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAGEZIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate enforces the required shape. It runs before any directory
// resolution or network activity and has no side effects.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: datadir must be set", ErrInvalidConfig)
	}
	if len(c.Headers) == 0 {
		return fmt.Errorf("%w: headers must be set", ErrInvalidConfig)
	}
	if len(c.URLs) == 0 {
		return fmt.Errorf("%w: urls must contain at least one entry", ErrInvalidConfig)
	}
	return nil
}
