// Package config reads the optional gridpack.yaml project file, which
// records a project's packing setup so it can be checked in next to
// the sprites instead of living in shell history.
package config

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working
// directory when no explicit path is given.
const DefaultFileName = "gridpack.yaml"

// Config holds a project's packing configuration. Command line flags
// override whatever is set here.
type Config struct {
	// Output is the directory the atlas and index are written to.
	Output string `yaml:"output"`

	// Sprites lists explicit sprite directories. Mutually exclusive
	// with Include/Exclude.
	Sprites []string `yaml:"sprites"`

	// Include and Exclude are glob patterns selecting sprite
	// directories.
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`

	// TileSize is a WIDTHxHEIGHT string such as "32x32". Empty means
	// auto-detect.
	TileSize string `yaml:"tile_size"`

	// Columns fixes the sheet width in tiles. Zero means automatic.
	Columns int `yaml:"columns"`

	AtlasName string `yaml:"atlas_name"`
	IndexName string `yaml:"index_name"`

	// Scales lists extra integer upscale factors to export, e.g.
	// [2, 4] writes atlas_2x.png and atlas_4x.png next to the sheet.
	Scales []int `yaml:"scales"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}

	// Fill defaults for anything left unset.
	if cfg.Output == "" {
		cfg.Output = "."
	}
	if cfg.AtlasName == "" {
		cfg.AtlasName = "atlas.png"
	}
	if cfg.IndexName == "" {
		cfg.IndexName = "index.json"
	}

	if cfg.Columns < 0 {
		return nil, fmt.Errorf("config %s: columns must not be negative, got %d", path, cfg.Columns)
	}
	for _, s := range cfg.Scales {
		if s < 1 {
			return nil, fmt.Errorf("config %s: scale factors must be positive, got %d", path, s)
		}
	}

	return &cfg, nil
}
