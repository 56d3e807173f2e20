// Package config handles configuration loading.
package config

import (
	"fmt"
	"os"

	"github.com/bitmold/organicmaps/internal/geo"

	"gopkg.in/yaml.v3"
)

// DefaultMaxBodySize limits uploads accepted by the server.
const DefaultMaxBodySize int64 = 10 << 20

// Config represents the root configuration file structure.
type Config struct {
	Projection  string `yaml:"projection,omitempty" json:"projection"`
	MaxBodySize int64  `yaml:"max_body_size,omitempty" json:"max_body_size"`
	Minify      bool   `yaml:"minify,omitempty" json:"minify"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML configuration file from the specified path.
// An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if _, err := cfg.ProjectionFunc(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &cfg, nil
}

// ProjectionFunc resolves the configured projection.
func (c *Config) ProjectionFunc() (geo.Projection, error) {
	return geo.ProjectionByName(c.Projection)
}

func (c *Config) applyDefaults() {
	if c.Projection == "" {
		c.Projection = geo.ProjectionMercator
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = DefaultMaxBodySize
	}
}
