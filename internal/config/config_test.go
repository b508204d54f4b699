package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kestrel-lang/quill/internal/config"
)

func TestLoadParsesDepthAndModules(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, ".quillrc.yaml"), "depth: 2048\nmodules:\n  - json\n  - fs\n")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Depth != 2048 {
		t.Fatalf("expected Depth 2048, got %d", cfg.Depth)
	}
	if len(cfg.Modules) != 2 || cfg.Modules[0] != "json" || cfg.Modules[1] != "fs" {
		t.Fatalf("expected Modules [json fs], got %v", cfg.Modules)
	}
}

func TestLoadWalksUpToAnAncestorDirectory(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".quillrc.yaml"), "depth: 512\n")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := config.Load(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Depth != 512 {
		t.Fatalf("expected Depth 512 found from an ancestor directory, got %d", cfg.Depth)
	}
}

func TestLoadMissingFileReturnsZeroConfigNoError(t *testing.T) {
	// An empty temp dir has no ancestor that would ever contain a
	// .quillrc.yaml created by another test, so this should bottom out
	// at the filesystem root without finding one.
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("expected no error for a missing config file, got %v", err)
	}
	if cfg.Depth != 0 || cfg.Modules != nil {
		t.Fatalf("expected a zero Config, got %#v", cfg)
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
