package litterbox

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	in := strings.NewReader(`
root: /tmp/project
ignore:
  - "*.log"
  - node_modules
trace: true
`)
	cfg, err := decode(in)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Root != "/tmp/project" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "*.log" {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
	if !cfg.Trace {
		t.Error("Trace not decoded")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := decode(strings.NewReader("root: [")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestValidateDefaultsRootToWorkingDirectory(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != filepath.Clean(wd) {
		t.Errorf("Root = %q, want %q", cfg.Root, wd)
	}
}

func TestValidateRejectsMissingRoot(t *testing.T) {
	cfg := &Config{Root: filepath.Join(t.TempDir(), "nope")}
	err := cfg.Validate()
	if !errors.Is(err, errRootMissing) {
		t.Fatalf("expected errRootMissing, got %v", err)
	}
}

func TestValidateRejectsFileRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{Root: path}
	err := cfg.Validate()
	if !errors.Is(err, errRootNotDir) {
		t.Fatalf("expected errRootNotDir, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(t.TempDir(), "litterbox.yml")
	if err := os.WriteFile(path, []byte("root: "+root+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != filepath.Clean(root) {
		t.Errorf("Root = %q, want %q", cfg.Root, root)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfigOrDefaultWithoutFile(t *testing.T) {
	cfg, err := LoadConfigOrDefault("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Root != "" || cfg.Trace {
		t.Errorf("expected zero default config, got %+v", cfg)
	}
}
