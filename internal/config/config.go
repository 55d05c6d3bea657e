// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/woozymasta/hexgeo/geogrid"
	"github.com/woozymasta/hexgeo/hexgrid"
	"github.com/woozymasta/hexgeo/projection"

	"gopkg.in/yaml.v3"
)

// Defaults applied to fields missing from the configuration file.
const (
	DefaultOrientation = "flat"
	DefaultProjection  = "mercator"
	DefaultMaxLayers   = 10
)

// Config represents the root configuration file structure.
type Config struct {
	Attribution string `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Grid        Grid   `yaml:"grid" json:"grid"`
	MaxLayers   int    `yaml:"max_layers,omitempty" json:"max_layers"` // upper bound for neighbor queries
}

// Grid describes the hex grid laid over the projected plane.
type Grid struct {
	Orientation string  `yaml:"orientation" json:"orientation"`
	Projection  string  `yaml:"projection" json:"projection"`
	Size        float64 `yaml:"size" json:"size"` // cell radius in projection units
	Unguarded   bool    `yaml:"unguarded,omitempty" json:"unguarded,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
// Missing optional fields get defaults and the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Grid.Orientation == "" {
		c.Grid.Orientation = DefaultOrientation
	}
	if c.Grid.Projection == "" {
		c.Grid.Projection = DefaultProjection
	}
	if c.MaxLayers <= 0 {
		c.MaxLayers = DefaultMaxLayers
	}
}

// Validate checks that the configuration describes a usable grid.
func (c *Config) Validate() error {
	var errs []string

	if _, err := hexgrid.ParseOrientation(c.Grid.Orientation); err != nil {
		errs = append(errs, "grid.orientation: "+err.Error())
	}
	if _, err := projection.ParseKind(c.Grid.Projection); err != nil {
		errs = append(errs, "grid.projection: "+err.Error())
	}
	if !(c.Grid.Size > 0) || math.IsInf(c.Grid.Size, 0) {
		errs = append(errs, fmt.Sprintf("grid.size must be positive, got %v", c.Grid.Size))
	}
	if c.MaxLayers < 0 {
		errs = append(errs, fmt.Sprintf("max_layers must not be negative, got %d", c.MaxLayers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Build creates the geo grid described by the configuration.
func (g Grid) Build() (*geogrid.Grid, error) {
	orientation, err := hexgrid.ParseOrientation(g.Orientation)
	if err != nil {
		return nil, err
	}

	proj, err := projection.Parse(g.Projection)
	if err != nil {
		return nil, err
	}
	if g.Unguarded {
		proj = proj.Unguarded()
	}

	return geogrid.New(orientation, g.Size, proj)
}
