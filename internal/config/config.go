// Package config loads the optional YAML configuration file holding
// tracker credentials and rendering preferences.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. All fields are optional; flags
// override whatever the file provides.
type Config struct {
	// BaseURL is the YouTrack instance root, e.g.
	// "https://example.youtrack.cloud".
	BaseURL string `yaml:"base_url"`
	// Token is the permanent API token. TokenFile, when set, wins and
	// keeps the token itself out of the config file.
	Token     string `yaml:"token"`
	TokenFile string `yaml:"token_file"`
	// CacheDir holds fetched issue JSON between runs.
	CacheDir string `yaml:"cache_dir"`
	// TodoLabel is the board column for incomplete projects without a
	// stage.
	TodoLabel string `yaml:"todo_label"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{CacheDir: ".youtrack-cache"}
}

// Load reads a YAML config file. A missing path returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveToken returns the API token, reading TokenFile if set.
func (c Config) ResolveToken() (string, error) {
	if c.TokenFile != "" {
		data, err := os.ReadFile(c.TokenFile)
		if err != nil {
			return "", fmt.Errorf("read token file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return c.Token, nil
}
