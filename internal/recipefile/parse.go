package recipefile

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"resincalc/internal/recipe"
)

// ErrFormat marks structural problems in a recipe document.
var ErrFormat = errors.New("malformed recipe document")

// Document is a parsed recipe document before validation.
type Document struct {
	Recipes      []recipe.Recipe
	LastModified time.Time
	// HasLastModified is false when the document carried no usable date.
	HasLastModified bool
}

// FormatError locates a structural problem in the document.
type FormatError struct {
	Line    int
	Recipe  string
	Message string
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Recipe != "":
		return fmt.Sprintf("line %d: recipe %q: %s", e.Line, e.Recipe, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	default:
		return e.Message
	}
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Parse strips comments from data and decodes the recipe mapping in
// document order. JSON objects are decoded as JSON; anything else is read
// as YAML. An empty document yields no recipes.
func Parse(data []byte) (*Document, error) {
	clean, modified, hasModified, err := StripComments(data)
	if err != nil {
		return nil, err
	}
	doc := &Document{LastModified: modified, HasLastModified: hasModified}

	if isJSONObject(clean) {
		recipes, err := decodeJSON(clean)
		if err != nil {
			return nil, err
		}
		doc.Recipes = recipes
		return doc, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(clean, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind == yaml.ScalarNode && top.ShortTag() == "!!null" {
		return doc, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, &FormatError{Line: top.Line, Message: "document must map recipe names to component lists"}
	}

	doc.Recipes = make([]recipe.Recipe, 0, len(top.Content)/2)
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, value := top.Content[i], top.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &FormatError{Line: key.Line, Message: "recipe name must be a string"}
		}
		r, err := decodeRecipe(key.Value, value)
		if err != nil {
			return nil, err
		}
		doc.Recipes = append(doc.Recipes, r)
	}
	return doc, nil
}

// decodeRecipe accepts the list form [[name, parts], ...] and the mapping
// form {base: n, components: [[name, parts], ...]}.
func decodeRecipe(name string, node *yaml.Node) (recipe.Recipe, error) {
	r := recipe.Recipe{Name: name}
	list := node
	if node.Kind == yaml.MappingNode {
		list = nil
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			switch key.Value {
			case "components":
				list = value
			case "base":
				if err := value.Decode(&r.Base); err != nil {
					return recipe.Recipe{}, &FormatError{Line: value.Line, Recipe: name, Message: "base must be a component index"}
				}
			default:
				return recipe.Recipe{}, &FormatError{Line: key.Line, Recipe: name, Message: fmt.Sprintf("unknown field %q", key.Value)}
			}
		}
		if list == nil {
			return recipe.Recipe{}, &FormatError{Line: node.Line, Recipe: name, Message: "missing components"}
		}
	}
	if list.Kind != yaml.SequenceNode {
		return recipe.Recipe{}, &FormatError{Line: list.Line, Recipe: name, Message: "components must be a list of [name, parts] pairs"}
	}

	r.Components = make([]recipe.Component, 0, len(list.Content))
	for _, entry := range list.Content {
		if entry.Kind != yaml.SequenceNode || len(entry.Content) != 2 {
			return recipe.Recipe{}, &FormatError{Line: entry.Line, Recipe: name, Message: "component must be a [name, parts] pair"}
		}
		nameNode, partsNode := entry.Content[0], entry.Content[1]
		if nameNode.Kind != yaml.ScalarNode {
			return recipe.Recipe{}, &FormatError{Line: nameNode.Line, Recipe: name, Message: "component name must be a string"}
		}
		var parts float64
		if partsNode.Kind != yaml.ScalarNode || partsNode.ShortTag() == "!!str" {
			return recipe.Recipe{}, &FormatError{Line: partsNode.Line, Recipe: name, Message: fmt.Sprintf("parts of %q must be a number", nameNode.Value)}
		}
		if err := partsNode.Decode(&parts); err != nil {
			return recipe.Recipe{}, &FormatError{Line: partsNode.Line, Recipe: name, Message: fmt.Sprintf("parts of %q must be a number", nameNode.Value)}
		}
		r.Components = append(r.Components, recipe.Component{Name: nameNode.Value, Parts: parts})
	}
	return r, nil
}

// Read parses the recipe document at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Store validates the document and returns the resulting store with the
// document's date attached.
func (d *Document) Store() (*recipe.Store, error) {
	store, err := recipe.Build(d.Recipes)
	if err != nil {
		return nil, err
	}
	if d.HasLastModified {
		store = store.WithLastModified(d.LastModified)
	}
	return store, nil
}

// Load reads, parses and validates the recipe document at path.
func Load(path string) (*recipe.Store, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}
	store, err := doc.Store()
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return store, nil
}
