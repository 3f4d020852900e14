package testsupport

import (
	"context"
	"testing"

	"resincalc/internal/config"
	"resincalc/internal/library"
	"resincalc/internal/logging"
	"resincalc/internal/recipe"
)

// MustBuildStore builds a recipe store or fails the test.
func MustBuildStore(t testing.TB, recipes ...recipe.Recipe) *recipe.Store {
	t.Helper()

	store, err := recipe.Build(recipes)
	if err != nil {
		t.Fatalf("recipe.Build: %v", err)
	}
	return store
}

// MustOpenLibrary opens the configured library for tests and registers cleanup.
func MustOpenLibrary(t testing.TB, cfg *config.Config) *library.Library {
	t.Helper()

	lib, err := library.Open(context.Background(), cfg.Library.Path, logging.NewNop())
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = lib.Close()
	})
	return lib
}
