package testsupport

import (
	"path/filepath"
	"testing"

	"resincalc/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose paths all live in a per-test temp
// directory. The recipe file path is set but nothing is written there.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Recipes.File = filepath.Join(base, "recepten.json")
	cfgVal.Recipes.WatchDebounceMS = 10
	cfgVal.Library.Path = filepath.Join(base, "library", "library.db")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRecipes writes content to the configured recipe file.
func WithRecipes(content string) ConfigOption {
	return func(b *configBuilder) {
		WriteRecipeFile(b.t, b.cfg.Recipes.File, content)
	}
}

// WithLibrary enables the SQLite library.
func WithLibrary() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Library.Enabled = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Recipes.File)
}
