// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds optional viewer settings loaded from a YAML file. Everything
// is optional; zero values defer to the document's app block or the built-in
// defaults.
type Config struct {
	Window struct {
		Title  string `yaml:"title"`
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
	} `yaml:"window"`

	// ModuleCacheDir overrides where cross-document modules are loaded from.
	ModuleCacheDir string `yaml:"moduleCacheDir"`
}

// Load reads a YAML config file. A missing path returns an empty config so
// the viewer runs without one.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	return cfg, nil
}
