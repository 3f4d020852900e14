package recipe

import "strings"

// ReferencePrefix marks a component that stands for another recipe in the
// same store. "@Epikote 04908" refers to the recipe named "Epikote 04908".
const ReferencePrefix = "@"

// Component is one entry of a recipe: a name and its relative weight.
type Component struct {
	Name  string  `json:"name"`
	Parts float64 `json:"parts"`
}

// Reference returns the referenced recipe name when the component is a
// mixture reference.
func (c Component) Reference() (string, bool) {
	return referenceName(c.Name)
}

// Recipe is a named, ordered list of components. Base is the index of the
// base component, conventionally the resin; it defaults to the first entry.
type Recipe struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
	Base       int         `json:"base,omitempty"`
}

// PartsSum returns the sum of all component parts.
func (r Recipe) PartsSum() float64 {
	var sum float64
	for _, c := range r.Components {
		sum += c.Parts
	}
	return sum
}

// Index returns the position of the component with the given name.
func (r Recipe) Index(name string) (int, bool) {
	for i, c := range r.Components {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// BaseComponent returns the component at Base.
func (r Recipe) BaseComponent() (Component, bool) {
	if r.Base < 0 || r.Base >= len(r.Components) {
		return Component{}, false
	}
	return r.Components[r.Base], true
}

// IsMixture reports whether any component references another recipe.
func (r Recipe) IsMixture() bool {
	for _, c := range r.Components {
		if _, ok := c.Reference(); ok {
			return true
		}
	}
	return false
}

func (r Recipe) clone() Recipe {
	out := r
	out.Components = make([]Component, len(r.Components))
	copy(out.Components, r.Components)
	return out
}

func referenceName(name string) (string, bool) {
	if !strings.HasPrefix(name, ReferencePrefix) {
		return "", false
	}
	ref := strings.TrimSpace(strings.TrimPrefix(name, ReferencePrefix))
	if ref == "" {
		return "", false
	}
	return ref, true
}
