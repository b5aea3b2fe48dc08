// Package config loads tocinc's project configuration file (tocin.yaml),
// the settings findProjectRoot/findStdlibPath in internal/module fall
// back to environment variables and directory conventions when no such
// file is present.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the shape of a project's tocin.yaml.
type Config struct {
	// Module is this project's own import path, e.g. "myapp".
	Module string `yaml:"module"`

	// StdlibPath overrides the standard library directory the module
	// loader searches; empty means fall back to TOCIN_STDLIB/defaults.
	StdlibPath string `yaml:"stdlib_path"`

	// ModulePaths are additional search directories, prepended ahead of
	// TOCIN_MODULE_PATH.
	ModulePaths []string `yaml:"module_paths"`

	// EmitDefault is the default --emit value when the CLI flag is
	// omitted: "ast", "typed-ast", or "ir".
	EmitDefault string `yaml:"emit_default"`

	// ErrorFormat is the default --error-format value: "human" or "json".
	ErrorFormat string `yaml:"error_format"`

	// Diagnostics lets a project downgrade or upgrade specific codes,
	// e.g. {"P002": "error"} to treat unreachable-pattern warnings as
	// errors.
	Diagnostics map[string]string `yaml:"diagnostics"`
}

// Default returns the configuration used when no tocin.yaml is found.
func Default() *Config {
	return &Config{
		EmitDefault: "ast",
		ErrorFormat: "human",
	}
}

// Load reads and parses a tocin.yaml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromProject looks for tocin.yaml in dir and returns Default() if it
// is absent — a missing config file is not an error, matching
// internal/module's project-root discovery which tolerates the same
// marker being absent.
func LoadFromProject(dir string) (*Config, error) {
	path := filepath.Join(dir, "tocin.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
