package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"resincalc/internal/recipe"
	"resincalc/internal/textutil"
)

const maxSuggestions = 3

// findRecipe resolves a user-typed recipe name and, when nothing matches,
// names the closest recipes in the error.
func findRecipe(store *recipe.Store, name string) (recipe.Recipe, error) {
	r, err := store.Lookup(name)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, recipe.ErrNotFound) {
		return recipe.Recipe{}, err
	}
	suggestions := textutil.Suggest(name, store.Names(), maxSuggestions)
	if len(suggestions) == 0 {
		return recipe.Recipe{}, err
	}
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = strconv.Quote(s)
	}
	return recipe.Recipe{}, fmt.Errorf("%w (did you mean %s?)", err, strings.Join(quoted, ", "))
}

// componentIndex resolves --component: a 1-based position as shown by
// `resincalc show`, or a component name.
func componentIndex(r recipe.Recipe, selector string) (int, error) {
	selector = strings.TrimSpace(selector)
	if n, err := strconv.Atoi(selector); err == nil {
		if n < 1 || n > len(r.Components) {
			return 0, &recipe.IndexOutOfRangeError{Index: n - 1, Count: len(r.Components)}
		}
		return n - 1, nil
	}
	if i, ok := r.Index(selector); ok {
		return i, nil
	}
	for i, c := range r.Components {
		if textutil.EqualFold(c.Name, selector) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("recipe %q has no component %q", r.Name, selector)
}
