package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tocin.yaml")
	contents := "module: myapp\nstdlib_path: /opt/tocin/stdlib\nmodule_paths:\n  - vendor\nemit_default: ir\nerror_format: json\ndiagnostics:\n  P002: error\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Module != "myapp" {
		t.Errorf("Module = %q, want myapp", cfg.Module)
	}
	if cfg.EmitDefault != "ir" {
		t.Errorf("EmitDefault = %q, want ir", cfg.EmitDefault)
	}
	if len(cfg.ModulePaths) != 1 || cfg.ModulePaths[0] != "vendor" {
		t.Errorf("ModulePaths = %v, want [vendor]", cfg.ModulePaths)
	}
	if cfg.Diagnostics["P002"] != "error" {
		t.Errorf("Diagnostics[P002] = %q, want error", cfg.Diagnostics["P002"])
	}
}

func TestLoadFromProject_MissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFromProject(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.EmitDefault != "ast" {
		t.Errorf("EmitDefault = %q, want ast", cfg.EmitDefault)
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
