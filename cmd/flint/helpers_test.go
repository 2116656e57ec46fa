package main

import (
	"os"
	"path/filepath"
	"testing"

	"flint/internal/backend/llvm/md"
)

func TestParseDebugMode(t *testing.T) {
	cases := []struct {
		input string
		want  md.EmissionKind
	}{
		{"", md.FullDebug},
		{"full", md.FullDebug},
		{"Full", md.FullDebug},
		{"lines", md.LineTablesOnly},
		{"line-tables", md.LineTablesOnly},
		{"none", md.NoDebug},
		{"off", md.NoDebug},
	}
	for _, tc := range cases {
		got, err := parseDebugMode(tc.input)
		if err != nil {
			t.Fatalf("parseDebugMode(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseDebugMode(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
	if _, err := parseDebugMode("sometimes"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input string
		want  uiMode
	}{
		{"", uiModeAuto},
		{"auto", uiModeAuto},
		{"ON", uiModeOn},
		{"off", uiModeOff},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		if err != nil {
			t.Fatalf("readUIMode(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
	if _, err := readUIMode("fancy"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestOutputNameFromPath(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"build/app.fir", "app"},
		{"app.fir", "app"},
		{"dir/nested/tool.v2.fir", "tool.v2"},
	}
	for _, tc := range cases {
		if got := outputNameFromPath(tc.input); got != tc.want {
			t.Fatalf("outputNameFromPath(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatPathForOutput(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "target", "debug", "app")
	if got := formatPathForOutput(root, inside); got != "target/debug/app" {
		t.Fatalf("formatPathForOutput = %q", got)
	}
	outside := filepath.Join(filepath.Dir(root), "elsewhere")
	if got := formatPathForOutput(root, outside); got != outside {
		t.Fatalf("expected outside path unchanged, got %q", got)
	}
	if got := formatPathForOutput("", "x"); got != "x" {
		t.Fatalf("expected passthrough for empty root, got %q", got)
	}
}

func TestExpandInputs(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel string) string {
		t.Helper()
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("stub"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		return path
	}
	one := mustWrite("mods/one.fir")
	two := mustWrite("mods/sub/two.fir")
	mustWrite("mods/.hidden/three.fir")
	mustWrite("mods/target/four.fir")
	mustWrite("mods/readme.txt")

	inputs, err := expandInputs([]string{filepath.Join(root, "mods")})
	if err != nil {
		t.Fatalf("expandInputs: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("inputs = %v, want [%s %s]", inputs, one, two)
	}
	if inputs[0] != one || inputs[1] != two {
		t.Fatalf("inputs = %v", inputs)
	}

	// Явный файл плюс каталог не должны дублировать записи.
	inputs, err = expandInputs([]string{one, filepath.Join(root, "mods")})
	if err != nil {
		t.Fatalf("expandInputs: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected dedup, got %v", inputs)
	}

	if _, err := expandInputs([]string{filepath.Join(root, "mods", "readme.txt")}); err == nil {
		t.Fatalf("expected error for non-.fir file")
	}
	if _, err := expandInputs([]string{filepath.Join(root, "nope")}); err == nil {
		t.Fatalf("expected error for missing path")
	}

	empty := filepath.Join(root, "empty")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := expandInputs([]string{empty}); err == nil {
		t.Fatalf("expected error for directory without modules")
	}
}

func TestDisplayFileList(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "build", "app.fir")
	got := displayFileList([]string{inside, inside, ""}, root)
	if len(got) != 1 || got[0] != "build/app.fir" {
		t.Fatalf("displayFileList = %v", got)
	}
	if got := displayFileList(nil, root); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
