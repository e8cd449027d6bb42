package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output.Extension != ".koopa" {
		t.Errorf("default extension = %q, want .koopa", cfg.Output.Extension)
	}
	if cfg.Diagnostics.Color != ColorAuto {
		t.Errorf("default color = %q, want auto", cfg.Diagnostics.Color)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[output]
dir = "build"
extension = ".ir"

[diagnostics]
color = "never"
dump_ast = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Dir != filepath.Join(dir, "build") || cfg.Output.Extension != ".ir" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Diagnostics.Color != ColorNever || !cfg.Diagnostics.DumpAST {
		t.Errorf("diagnostics = %+v", cfg.Diagnostics)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[diagnostics]\ndump_ast = true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Extension != ".koopa" {
		t.Errorf("extension = %q, want default .koopa", cfg.Output.Extension)
	}
	if cfg.Diagnostics.Color != ColorAuto {
		t.Errorf("color = %q, want default auto", cfg.Diagnostics.Color)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		expect  string
	}{
		{"syntax", "[output\n", "failed to parse TOML"},
		{"unknown key", "[output]\nformat = \"text\"\n", "unknown keys: output.format"},
		{"bad extension", "[output]\nextension = \"koopa\"\n", "[output].extension must start with"},
		{"bad color", "[diagnostics]\ncolor = \"sometimes\"\n", "[diagnostics].color must be"},
		{"wrong type", "[diagnostics]\ndump_ast = \"yes\"\n", "failed to parse TOML"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tc.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.expect) {
				t.Errorf("error %q does not contain %q", err.Error(), tc.expect)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("expected to find config")
	}
	want, _ := filepath.Abs(filepath.Join(root, FileName))
	if path != want {
		t.Errorf("Find = %q, want %q", path, want)
	}
}

func TestFindStopsAtRepoRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "")
	repo := filepath.Join(root, "repo")
	nested := filepath.Join(repo, "src")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if path, ok, err := Find(nested); err != nil || ok {
		t.Fatalf("Find = %q, %v, %v; want no config above the repo root", path, ok, err)
	}

	// A config at the repo root itself is still found
	writeConfig(t, repo, "")
	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v; want repo config", path, ok, err)
	}
	want, _ := filepath.Abs(filepath.Join(repo, FileName))
	if path != want {
		t.Errorf("Find = %q, want %q", path, want)
	}
}

func TestDiscoverWithoutConfig(t *testing.T) {
	// TempDir lives outside any project, so no sysyc.toml should be found
	// unless the machine has one at the filesystem root.
	dir := t.TempDir()
	if _, ok, _ := Find(dir); ok {
		t.Skip("a sysyc.toml exists above the temp dir")
	}
	cfg, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Discover = %+v, want defaults", cfg)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		dir, ext, input, expected string
	}{
		{"", ".koopa", "hello.c", "hello.koopa"},
		{"", ".koopa", "src/hello.sy", "src/hello.koopa"},
		{"", ".koopa", "noext", "noext.koopa"},
		{"build", ".ir", "src/hello.c", filepath.Join("build", "hello.ir")},
	}

	for _, tt := range tests {
		cfg := Config{Output: OutputConfig{Dir: tt.dir, Extension: tt.ext}}
		if got := cfg.OutputPath(tt.input); got != tt.expected {
			t.Errorf("OutputPath(%q) with dir=%q ext=%q = %q, want %q", tt.input, tt.dir, tt.ext, got, tt.expected)
		}
	}
}
