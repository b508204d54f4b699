// Package config loads the optional .quillrc.yaml project file
// (SPEC_FULL.md ambient stack): default recursion depth and which
// standard modules to preload, so scripts in a directory don't need
// --depth/--modules repeated on every invocation.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config mirrors the subset of `.quillrc.yaml` the CLI understands.
type Config struct {
	Depth   int      `yaml:"depth"`
	Modules []string `yaml:"modules"`
}

// Load searches dir and its ancestors for .quillrc.yaml and parses the
// first one found. A missing file is not an error: it returns a zero
// Config, and callers fall back to their own defaults.
func Load(dir string) (Config, error) {
	path, found, err := findConfig(dir)
	if err != nil || !found {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func findConfig(dir string) (string, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, ".quillrc.yaml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
