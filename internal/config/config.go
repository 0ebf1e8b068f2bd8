// Package config loads the per-project .mofmt.yaml that overrides the
// indent width and line-terminator defaults. All formatting semantics stay
// fixed; only these two ambient knobs are configurable.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable ambient settings a .mofmt.yaml may override.
type Config struct {
	// Indent is the number of spaces per indent level. Default 2.
	Indent int `yaml:"indent"`
	// CRLF selects "\r\n" line terminators instead of "\n".
	CRLF bool `yaml:"crlf"`
}

// Default returns the built-in configuration used when no .mofmt.yaml is
// found.
func Default() Config {
	return Config{Indent: 2, CRLF: false}
}

// Load reads and parses the .mofmt.yaml at path, overlaying it onto
// Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Discover walks upward from dir looking for a .mofmt.yaml, returning
// Default() if none is found before reaching the filesystem root.
func Discover(dir string) (Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, err
	}
	for {
		candidate := filepath.Join(dir, ".mofmt.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
