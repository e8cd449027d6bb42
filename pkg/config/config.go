// Package config loads sysyc project settings from sysyc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the project config file looked up next to the sources.
const FileName = "sysyc.toml"

// Color modes accepted by [diagnostics].color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings of one sysyc project
type Config struct {
	Output      OutputConfig      `toml:"output"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

// OutputConfig controls where generated IR files are written
type OutputConfig struct {
	Dir       string `toml:"dir"`       // empty: next to the input
	Extension string `toml:"extension"` // replaces the input extension
}

// DiagnosticsConfig controls what the driver reports
type DiagnosticsConfig struct {
	Color   string `toml:"color"`
	DumpAST bool   `toml:"dump_ast"`
}

// Default returns the settings used when no sysyc.toml exists
func Default() Config {
	return Config{
		Output:      OutputConfig{Extension: ".koopa"},
		Diagnostics: DiagnosticsConfig{Color: ColorAuto},
	}
}

// Find walks up from startDir looking for sysyc.toml. The search stops at
// the filesystem root or after the first directory holding .git, so a
// repository never picks up a config from outside its checkout.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		if isRepoRoot(dir) {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// isRepoRoot reports whether dir contains a .git directory or file
func isRepoRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Load reads a config file. Keys that are absent keep their defaults and a
// relative [output].dir is resolved against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Output.Dir != "" && !filepath.IsAbs(cfg.Output.Dir) {
		cfg.Output.Dir = filepath.Join(filepath.Dir(path), cfg.Output.Dir)
	}
	return cfg, nil
}

// Discover loads the nearest sysyc.toml above startDir, or the defaults if none exists.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks values that TOML decoding cannot
func (c Config) Validate() error {
	if !strings.HasPrefix(c.Output.Extension, ".") {
		return fmt.Errorf("[output].extension must start with \".\", got %q", c.Output.Extension)
	}
	switch c.Diagnostics.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("[diagnostics].color must be auto, always or never, got %q", c.Diagnostics.Color)
	}
	return nil
}

// OutputPath returns the IR file path for an input source file:
// input.c -> input.koopa, placed in Output.Dir when set.
func (c Config) OutputPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input)) + c.Output.Extension
	if c.Output.Dir == "" {
		return base
	}
	return filepath.Join(c.Output.Dir, filepath.Base(base))
}
