package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunCleanRemovesTargetDir(t *testing.T) {
	root := t.TempDir()
	targetDir := filepath.Join(root, "target", "debug")
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(targetDir, "app"), []byte("bin"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := runClean(cleanCmd, []string{root}); err != nil {
		t.Fatalf("runClean: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "target")); !os.IsNotExist(err) {
		t.Fatalf("target dir still present: %v", err)
	}
}

func TestRunCleanMissingTarget(t *testing.T) {
	if err := runClean(cleanCmd, []string{t.TempDir()}); err != nil {
		t.Fatalf("runClean on empty dir: %v", err)
	}
}

func TestResolveCleanBasePrefersManifestRoot(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[build]\ninput = \"a.fir\"\n")
	nested := filepath.Join(root, "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := resolveCleanBase(nested)
	if err != nil {
		t.Fatalf("resolveCleanBase: %v", err)
	}
	if got != root {
		t.Fatalf("base = %q, want %q", got, root)
	}
}
