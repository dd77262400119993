// Package project loads per-project configuration for export runs.
// Settings come from an optional partforge.toml next to the project,
// with PARTFORGE_* environment variables taking precedence over the
// file for use in build scripts and CI.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"github.com/sapiens-modding/partforge/pkg/layout"
	"github.com/sapiens-modding/partforge/pkg/rules"
)

// DefaultFileName is the configuration file looked up in the project
// directory.
const DefaultFileName = "partforge.toml"

// Config holds the tunable settings of an export run. Zero values are
// filled in from Defaults before the file and environment are applied.
type Config struct {
	// ContainerDir is the directory the scene file must live in.
	ContainerDir string `toml:"container_dir" env:"PARTFORGE_CONTAINER_DIR"`
	// OutputDir is the sibling directory artifacts are written under.
	OutputDir string `toml:"output_dir" env:"PARTFORGE_OUTPUT_DIR"`
	// Extension is the artifact file extension, including the dot.
	Extension string `toml:"extension" env:"PARTFORGE_EXTENSION"`
	// RulesFile is the shape rule script, relative to the project dir
	// unless absolute.
	RulesFile string `toml:"rules_file" env:"PARTFORGE_RULES_FILE"`
	// Preview embeds marker meshes for placeholders in the scene artifact.
	Preview bool `toml:"preview" env:"PARTFORGE_PREVIEW"`
}

// Defaults returns the configuration used when no file or environment
// overrides are present.
func Defaults() Config {
	return Config{
		ContainerDir: layout.DefaultContainerDir,
		OutputDir:    layout.DefaultOutputDir,
		Extension:    ".glb",
		RulesFile:    rules.DefaultScriptName,
	}
}

// Load reads configuration for the project rooted at dir. A missing
// partforge.toml is not an error. Environment variables override file
// values; file values override defaults.
func Load(dir string) (Config, error) {
	cfg := Defaults()

	path := filepath.Join(dir, DefaultFileName)
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.RulesFile = resolveRelative(dir, cfg.RulesFile)
	return cfg, nil
}

func (c Config) validate() error {
	if c.ContainerDir == "" || strings.ContainsAny(c.ContainerDir, `/\`) {
		return fmt.Errorf("container_dir %q must be a bare directory name", c.ContainerDir)
	}
	if c.OutputDir == "" || strings.ContainsAny(c.OutputDir, `/\`) {
		return fmt.Errorf("output_dir %q must be a bare directory name", c.OutputDir)
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if c.RulesFile == "" {
		return fmt.Errorf("rules_file must not be empty")
	}
	return nil
}

func resolveRelative(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
