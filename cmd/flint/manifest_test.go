package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, "flint.toml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write flint.toml: %v", err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `# test manifest
[package]
name = "demo"
version = "0.1.0"

[build]
input = "build/demo.fir"
link = ["runtime/libdemo.a"]

[target]
triple = "x86_64-unknown-linux-gnu"
debug = "lines"
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Fatalf("Package.Name = %q, want demo", cfg.Package.Name)
	}
	if cfg.Build.Input != "build/demo.fir" {
		t.Fatalf("Build.Input = %q", cfg.Build.Input)
	}
	if len(cfg.Build.Link) != 1 || cfg.Build.Link[0] != "runtime/libdemo.a" {
		t.Fatalf("Build.Link = %v", cfg.Build.Link)
	}
	if cfg.Target.Triple != "x86_64-unknown-linux-gnu" {
		t.Fatalf("Target.Triple = %q", cfg.Target.Triple)
	}
	if cfg.Target.Debug != "lines" {
		t.Fatalf("Target.Debug = %q", cfg.Target.Debug)
	}
}

func TestLoadProjectConfigRejectsBrokenManifests(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		wantSub string
	}{
		{
			name:    "missing package",
			data:    "[build]\ninput = \"a.fir\"\n",
			wantSub: "missing [package]",
		},
		{
			name:    "empty name",
			data:    "[package]\nname = \"\"\n\n[build]\ninput = \"a.fir\"\n",
			wantSub: "[package].name",
		},
		{
			name:    "missing build",
			data:    "[package]\nname = \"demo\"\n",
			wantSub: "missing [build]",
		},
		{
			name:    "missing input",
			data:    "[package]\nname = \"demo\"\n\n[build]\n",
			wantSub: "[build].input",
		},
		{
			name:    "bad debug",
			data:    "[package]\nname = \"demo\"\n\n[build]\ninput = \"a.fir\"\n\n[target]\ndebug = \"sometimes\"\n",
			wantSub: "[target].debug",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.data)
			_, err := loadProjectConfig(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestFindFlintTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n\n[build]\ninput = \"a.fir\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, found, err := findFlintToml(nested)
	if err != nil {
		t.Fatalf("findFlintToml: %v", err)
	}
	if !found {
		t.Fatalf("expected manifest to be found from %s", nested)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %s, want manifest in %s", path, root)
	}
}

func TestFindFlintTomlMissing(t *testing.T) {
	_, found, err := findFlintToml(t.TempDir())
	if err != nil {
		t.Fatalf("findFlintToml: %v", err)
	}
	if found {
		t.Fatalf("unexpected manifest")
	}
}

func TestResolveManifestInput(t *testing.T) {
	root := t.TempDir()
	buildDir := filepath.Join(root, "build")
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	modPath := filepath.Join(buildDir, "demo.fir")
	if err := os.WriteFile(modPath, []byte("stub"), 0o600); err != nil {
		t.Fatalf("write module: %v", err)
	}
	manifest := &projectManifest{
		Path:   filepath.Join(root, "flint.toml"),
		Root:   root,
		Config: projectConfig{Build: buildConfig{Input: "build/demo.fir"}},
	}

	got, err := resolveManifestInput(manifest)
	if err != nil {
		t.Fatalf("resolveManifestInput: %v", err)
	}
	if got != modPath {
		t.Fatalf("input = %q, want %q", got, modPath)
	}

	manifest.Config.Build.Input = "build/missing.fir"
	if _, err := resolveManifestInput(manifest); err == nil {
		t.Fatalf("expected error for missing input")
	}

	manifest.Config.Build.Input = "build"
	if _, err := resolveManifestInput(manifest); err == nil {
		t.Fatalf("expected error for directory input")
	}
}

func TestManifestLinkObjects(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(root, "libabs.a")
	manifest := &projectManifest{
		Root: root,
		Config: projectConfig{Build: buildConfig{
			Link: []string{"runtime/librt.a", "", abs},
		}},
	}
	got := manifestLinkObjects(manifest)
	want := []string{filepath.Join(root, "runtime", "librt.a"), abs}
	if len(got) != len(want) {
		t.Fatalf("objects = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("objects[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if objs := manifestLinkObjects(nil); objs != nil {
		t.Fatalf("expected nil for nil manifest, got %v", objs)
	}
}
