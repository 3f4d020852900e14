package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"resincalc/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.RecipesEnv, "")
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "resincalc", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Recipes.File != filepath.Join(tempHome, "recepten.json") {
		t.Fatalf("unexpected recipe file: %q", cfg.Recipes.File)
	}
	if cfg.Library.Path != filepath.Join(tempHome, ".local", "share", "resincalc", "library.db") {
		t.Fatalf("unexpected library path: %q", cfg.Library.Path)
	}
	if cfg.Library.Enabled {
		t.Fatal("expected library disabled by default")
	}
	if cfg.Display.Precision != 1 {
		t.Fatalf("expected one decimal by default, got %d", cfg.Display.Precision)
	}
	if cfg.Display.Unit != "g" {
		t.Fatalf("expected grams, got %q", cfg.Display.Unit)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.WatchDebounce().Milliseconds() != 250 {
		t.Fatalf("unexpected debounce %v", cfg.WatchDebounce())
	}
}

func TestLoadUsesRecipesEnvWhenFileUnset(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(tempHome)
	t.Setenv(config.RecipesEnv, "~/shop/recipes.json")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Recipes.File != filepath.Join(tempHome, "shop", "recipes.json") {
		t.Fatalf("expected env recipe file, got %q", cfg.Recipes.File)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "resincalc.toml")

	type payload struct {
		Recipes struct {
			File string `toml:"file"`
		} `toml:"recipes"`
		Display struct {
			Precision int    `toml:"precision"`
			Locale    string `toml:"locale"`
			Style     string `toml:"style"`
		} `toml:"display"`
		Logging struct {
			Level string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Recipes.File = filepath.Join(tempDir, "recipes.json")
	custom.Display.Precision = 2
	custom.Display.Locale = "nl"
	custom.Display.Style = "ASCII"
	custom.Logging.Level = "DEBUG"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(config.RecipesEnv, "/should/not/be/used.json")
	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Recipes.File != custom.Recipes.File {
		t.Fatalf("unexpected recipe file %q", cfg.Recipes.File)
	}
	if cfg.Display.Precision != 2 || cfg.Display.Locale != "nl" || cfg.Display.Style != "ascii" {
		t.Fatalf("unexpected display config: %+v", cfg.Display)
	}
	if cfg.Display.Unit != "g" {
		t.Fatalf("expected default unit to survive partial config, got %q", cfg.Display.Unit)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"precision", "[display]\nprecision = 9\n", "display.precision"},
		{"style", "[display]\nstyle = \"fancy\"\n", "display.style"},
		{"locale", "[display]\nlocale = \"not a locale!\"\n", "display.locale"},
		{"log format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"log level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"debounce", "[recipes]\nwatch_debounce_ms = -1\n", "watch_debounce_ms"},
		{"unknown key", "[recipes]\nfiles = \"x\"\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	target := filepath.Join(tempHome, "nested", "config.toml")

	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Display.Precision != config.Default().Display.Precision {
		t.Fatalf("sample precision differs from defaults: %d", cfg.Display.Precision)
	}
}

func TestExpandPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	got, err := config.ExpandPath("~/recepten.json")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(tempHome, "recepten.json") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got, _ := config.ExpandPath(""); got != "" {
		t.Fatalf("expected empty path to stay empty, got %q", got)
	}
}
