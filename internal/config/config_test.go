package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Indent != 2 || cfg.CRLF != false {
		t.Fatalf("Default() = %+v, want {Indent:2 CRLF:false}", cfg)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mofmt.yaml")
	if err := os.WriteFile(path, []byte("indent: 4\ncrlf: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Indent != 4 || !cfg.CRLF {
		t.Fatalf("Load() = %+v, want {Indent:4 CRLF:true}", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("Load() error = nil, want an error for a missing file")
	}
}

func TestLoadPartialOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mofmt.yaml")
	if err := os.WriteFile(path, []byte("indent: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Indent != 3 {
		t.Fatalf("cfg.Indent = %d, want 3", cfg.Indent)
	}
	if cfg.CRLF != false {
		t.Fatalf("cfg.CRLF = %v, want false (unset field keeps Default)", cfg.CRLF)
	}
}

func TestDiscoverFindsNearestAncestor(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a", ".mofmt.yaml"), []byte("indent: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Discover(sub)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg.Indent != 8 {
		t.Fatalf("Discover() = %+v, want Indent:8", cfg)
	}
}

func TestDiscoverFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Discover() = %+v, want Default()", cfg)
	}
}
