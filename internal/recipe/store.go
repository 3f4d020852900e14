package recipe

import (
	"math"
	"strings"
	"time"

	"resincalc/internal/textutil"
)

// MinComponents is the smallest number of components a recipe may have.
const MinComponents = 2

// Store is an immutable, validated set of recipes in input order. It is safe
// for concurrent use; reloads build a new Store rather than changing this one.
type Store struct {
	order   []string
	recipes map[string]Recipe
	// folded maps a folded name to its canonical name. Folded names shared by
	// more than one recipe map to "" and never match.
	folded map[string]string

	lastModified    time.Time
	hasLastModified bool
}

// Build validates recipes and returns a Store holding deep copies of them.
// The first validation failure aborts the build and no Store is returned.
// Passing no recipes yields an empty, valid Store.
func Build(recipes []Recipe) (*Store, error) {
	s := &Store{
		order:   make([]string, 0, len(recipes)),
		recipes: make(map[string]Recipe, len(recipes)),
		folded:  make(map[string]string, len(recipes)),
	}
	for _, r := range recipes {
		if err := validateRecipe(r); err != nil {
			return nil, err
		}
		if _, exists := s.recipes[r.Name]; exists {
			return nil, &DuplicateRecipeError{Name: r.Name}
		}
		s.recipes[r.Name] = r.clone()
		s.order = append(s.order, r.Name)

		key := textutil.FoldName(r.Name)
		if _, taken := s.folded[key]; taken {
			s.folded[key] = ""
		} else {
			s.folded[key] = r.Name
		}
	}
	if err := s.validateReferences(); err != nil {
		return nil, err
	}
	return s, nil
}

func validateRecipe(r Recipe) error {
	if strings.TrimSpace(r.Name) == "" {
		return &EmptyNameError{Position: -1}
	}
	seen := make(map[string]struct{}, len(r.Components))
	for i, c := range r.Components {
		if strings.TrimSpace(c.Name) == "" {
			return &EmptyNameError{Recipe: r.Name, Position: i}
		}
		if _, dup := seen[c.Name]; dup {
			return &DuplicateComponentError{Recipe: r.Name, Component: c.Name}
		}
		seen[c.Name] = struct{}{}
		if !validParts(c.Parts) {
			return &InvalidPartsError{Recipe: r.Name, Component: c.Name, Parts: c.Parts}
		}
	}
	if len(r.Components) < MinComponents {
		return &InsufficientComponentsError{Recipe: r.Name, Count: len(r.Components)}
	}
	if r.Base < 0 || r.Base >= len(r.Components) {
		return &InvalidBaseError{Recipe: r.Name, Base: r.Base, Count: len(r.Components)}
	}
	// Finite parts can still overflow when summed.
	if sum := r.PartsSum(); !validParts(sum) {
		return &InvalidPartsError{Recipe: r.Name, Parts: sum}
	}
	return nil
}

func validParts(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Names returns the recipe names in input order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of recipes.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Recipe returns a copy of the recipe with exactly the given name.
func (s *Store) Recipe(name string) (Recipe, error) {
	if s == nil {
		return Recipe{}, &NotFoundError{Name: name}
	}
	r, ok := s.recipes[name]
	if !ok {
		return Recipe{}, &NotFoundError{Name: name}
	}
	return r.clone(), nil
}

// Lookup resolves a user-typed name: an exact match wins, otherwise a match
// ignoring case and repeated whitespace, provided it is unambiguous.
func (s *Store) Lookup(name string) (Recipe, error) {
	if r, err := s.Recipe(name); err == nil {
		return r, nil
	}
	if s != nil {
		if canonical := s.folded[textutil.FoldName(name)]; canonical != "" {
			return s.Recipe(canonical)
		}
	}
	return Recipe{}, &NotFoundError{Name: name}
}

// Recipes returns copies of all recipes in input order.
func (s *Store) Recipes() []Recipe {
	if s == nil {
		return nil
	}
	out := make([]Recipe, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.recipes[name].clone())
	}
	return out
}

// LastModified returns the "last modified" date of the source the store was
// loaded from, when the source carried one.
func (s *Store) LastModified() (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	return s.lastModified, s.hasLastModified
}

// WithLastModified returns a Store sharing this store's recipes with the
// given metadata attached. A zero time clears the metadata.
func (s *Store) WithLastModified(t time.Time) *Store {
	if s == nil {
		return nil
	}
	clone := *s
	clone.lastModified = t
	clone.hasLastModified = !t.IsZero()
	return &clone
}
