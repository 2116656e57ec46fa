package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noFlintTomlMessage = "no flint.toml found\n" +
	"please run the command inside a flint project or pass the module explicitly, e.g.:\n" +
	"  flint build path/to/module.fir"

// projectManifest описывает найденный flint.toml вместе с корнем проекта.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Build   buildConfig   `toml:"build"`
	Target  targetConfig  `toml:"target"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type buildConfig struct {
	Input string   `toml:"input"`
	Link  []string `toml:"link"`
}

type targetConfig struct {
	Triple string `toml:"triple"`
	Debug  string `toml:"debug"`
}

// findFlintToml ищет flint.toml начиная с startDir и поднимаясь вверх по дереву.
func findFlintToml(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}
	for {
		candidate := filepath.Join(dir, "flint.toml")
		info, statErr := os.Stat(candidate)
		if statErr == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %s: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	path, found, err := findFlintToml(startDir)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package] section", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: [package].name must be a non-empty string", path)
	}
	if !meta.IsDefined("build") {
		return projectConfig{}, fmt.Errorf("%s: missing [build] section", path)
	}
	if !meta.IsDefined("build", "input") || strings.TrimSpace(cfg.Build.Input) == "" {
		return projectConfig{}, fmt.Errorf("%s: [build].input must point to a .fir module", path)
	}
	if meta.IsDefined("target", "debug") {
		if _, err := parseDebugMode(cfg.Target.Debug); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [target].debug: %w", path, err)
		}
	}
	return cfg, nil
}

// resolveManifestInput возвращает абсолютный путь к модулю из [build].input.
func resolveManifestInput(manifest *projectManifest) (string, error) {
	if manifest == nil {
		return "", errors.New("missing project manifest")
	}
	rel := filepath.FromSlash(strings.TrimSpace(manifest.Config.Build.Input))
	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(manifest.Root, rel)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [build].input does not exist: %s", manifest.Path, path)
		}
		return "", fmt.Errorf("%s: failed to stat [build].input: %w", manifest.Path, err)
	}
	if info.IsDir() || filepath.Ext(path) != ".fir" {
		return "", fmt.Errorf("%s: [build].input must be a .fir file, got %s", manifest.Path, path)
	}
	return path, nil
}

// manifestLinkObjects раскрывает [build].link относительно корня проекта.
func manifestLinkObjects(manifest *projectManifest) []string {
	if manifest == nil || len(manifest.Config.Build.Link) == 0 {
		return nil
	}
	objects := make([]string, 0, len(manifest.Config.Build.Link))
	for _, entry := range manifest.Config.Build.Link {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		path := filepath.FromSlash(entry)
		if !filepath.IsAbs(path) {
			path = filepath.Join(manifest.Root, path)
		}
		objects = append(objects, path)
	}
	return objects
}
