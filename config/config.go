// Package config loads the editor settings from editor.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigDir = "WAVEPLAN_CONFIG_DIR"
	EnvOutputDir = "WAVEPLAN_OUTPUT_DIR"
)

type Config struct {
	// ConfigDir holds the catalog, the presets and relative preset paths.
	ConfigDir string `yaml:"config_dir"`
	// OutputDir receives exports, one subdirectory per map.
	OutputDir string `yaml:"output_dir"`

	CatalogFile      string `yaml:"catalog_file"`
	PresetsFile      string `yaml:"presets_file"`
	CapabilityScript string `yaml:"capability_script"`

	Map      MapConfig    `yaml:"map"`
	Window   WindowConfig `yaml:"window"`
	Validate bool         `yaml:"validate"`
	Watch    bool         `yaml:"watch"`
}

type MapConfig struct {
	File string `yaml:"file"`
	Rows int    `yaml:"rows"`
	Cols int    `yaml:"cols"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		ConfigDir:   "maps",
		OutputDir:   "output",
		CatalogFile: "buildings_config.json",
		PresetsFile: "map_presets.json",
		Map:         MapConfig{File: "terrain_01.json", Rows: 40, Cols: 40},
		Window:      WindowConfig{Width: 1600, Height: 900},
		Validate:    true,
		Watch:       true,
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Directories left empty by the file fall back to the environment, then to
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.ConfigDir, cfg.OutputDir = "", ""

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	}

	cfg.ConfigDir = withEnvFallback(cfg.ConfigDir, EnvConfigDir, "maps")
	cfg.OutputDir = withEnvFallback(cfg.OutputDir, EnvOutputDir, "output")
	if cfg.Map.Rows <= 0 || cfg.Map.Cols <= 0 {
		return nil, fmt.Errorf("config: %s: map size %dx%d must be positive", path, cfg.Map.Rows, cfg.Map.Cols)
	}
	return cfg, nil
}

// withEnvFallback returns value, else the environment variable, else def.
func withEnvFallback(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// CatalogPath is the catalog file inside ConfigDir.
func (c *Config) CatalogPath() string { return c.inConfigDir(c.CatalogFile) }

// PresetsPath is the presets file inside ConfigDir.
func (c *Config) PresetsPath() string { return c.inConfigDir(c.PresetsFile) }

// CapabilityPath is the capability script inside ConfigDir, or "" when no
// script is configured.
func (c *Config) CapabilityPath() string { return c.inConfigDir(c.CapabilityScript) }

func (c *Config) inConfigDir(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.ConfigDir, name)
}
