package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"flint/internal/fir"
	"flint/internal/source"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new flint project",
	Long: `Initialize a new flint project by creating a project manifest (flint.toml)
and a placeholder module (build/main.fir) that returns 0. If [path|name] is
omitted, initializes the current directory. If a non-existing name is provided,
a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "flint-project"
	}

	manifestPath := filepath.Join(target, "flint.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	// Serialize the placeholder module unless one is already there.
	modulePath := filepath.Join(target, "build", "main.fir")
	createdModule := false
	if _, err := os.Stat(modulePath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(modulePath), 0o755); err != nil {
			return fmt.Errorf("failed to create build directory: %w", err)
		}
		if err := fir.WriteFile(modulePath, defaultMainModule(name)); err != nil {
			return fmt.Errorf("failed to write main.fir: %w", err)
		}
		createdModule = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized flint project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - flint.toml\n")
	if createdModule {
		fmt.Fprintf(os.Stdout, "  - build/main.fir\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - build/main.fir (existing)\n")
	}
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for a flint project
// using the provided package name.
func buildDefaultManifest(name string) string {
	// Minimal TOML manifest used as a project marker.
	return fmt.Sprintf(`# Flint project manifest
[package]
name = "%s"
version = "0.1.0"

[build]
input = "build/main.fir"
`, name)
}

// defaultMainModule builds the placeholder module serialized by flint init:
// a single main that returns 0, attributed to a made-up main.fl source.
func defaultMainModule(name string) *fir.Module {
	files := source.NewTable()
	mainFile := files.Add("main.fl")
	return &fir.Module{
		Name:  name,
		Files: files.Paths(),
		Funcs: []fir.Func{
			{
				ID:      0,
				Name:    "main",
				Loc:     source.Loc{File: mainFile, Line: 1, Col: 1},
				Result:  fir.I32,
				Entry:   0,
				Defined: true,
				Blocks: []fir.Block{
					{
						ID: 0,
						Term: fir.Terminator{
							Kind: fir.TermReturn,
							Loc:  source.Loc{File: mainFile, Line: 2, Col: 5},
							Return: fir.ReturnTerm{
								HasValue: true,
								Value: fir.Operand{Kind: fir.OperandConst, Const: fir.Const{
									Kind: fir.ConstInt, Type: fir.I32, IntValue: 0,
								}},
							},
						},
					},
				},
			},
		},
	}
}
