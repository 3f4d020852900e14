package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"resincalc/internal/recipefile"
	"resincalc/internal/testsupport"
)

func TestListShowsDocumentOrder(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRecipes(testsupport.EpikoteDocument))

	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "last modified 2017-04-28 18:47:52 +0200")
	requireContains(t, out, "mixture")

	out, _, err = runCLI(t, []string{"list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	var payload struct {
		LastModified string              `json:"last_modified"`
		Recipes      []recipeSummaryJSON `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Recipes) != 2 || payload.Recipes[0].Name != "Epikote 04908" || !payload.Recipes[1].Mixture {
		t.Fatalf("unexpected recipes %+v", payload.Recipes)
	}
	if payload.LastModified != "2017-04-28 18:47:52 +0200" {
		t.Fatalf("unexpected last modified %q", payload.LastModified)
	}
}

func TestListWithoutDate(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRecipes(testsupport.ArakoteDocument))

	out, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "last modified unknown")
	requireContains(t, out, "Araldite LY 5052")
}

func TestShowRecipe(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRecipes(testsupport.EpikoteDocument))

	out, _, err := runCLI(t, []string{"show", "Epikote 04908"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "76.9%")
	requireContains(t, out, "23.1%")
	requireContains(t, out, "100.0%")
	requireContains(t, out, "base")
}

func TestInvalidRecipeFileFails(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRecipes(`{"A": [["x", 1], ["x", 2]]}`))

	if _, _, err := runCLI(t, []string{"list"}, env.configPath); err == nil {
		t.Fatal("expected duplicate component error")
	}
}

func TestRecipesInit(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "sample.json")

	out, _, err := runCLI(t, []string{"recipes", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("recipes init: %v", err)
	}
	requireContains(t, out, "Wrote sample recipes")

	store, err := recipefile.Load(target)
	if err != nil {
		t.Fatalf("sample does not load: %v", err)
	}
	if _, ok := store.LastModified(); !ok {
		t.Fatal("expected sample to carry a last modified date")
	}

	if _, _, err := runCLI(t, []string{"recipes", "init", "--path", target}, env.configPath); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if _, _, err := runCLI(t, []string{"recipes", "init", "--path", target, "--overwrite"}, env.configPath); err != nil {
		t.Fatalf("recipes init --overwrite: %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithRecipes(testsupport.EpikoteDocument))

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Recipe file: "+env.cfg.Recipes.File)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Sample resincalc settings saved to "+target)
	requireContains(t, out, "resincalc config validate")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("expected init to refuse an existing settings file")
	}
	requireContains(t, err.Error(), "--overwrite")
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigRejectsInvalidFile(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[display]\nprecision = 42\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, err := runCLI(t, []string{"list"}, env.configPath)
	if err == nil {
		t.Fatal("expected config error")
	}
	requireContains(t, err.Error(), "display.precision")
}
