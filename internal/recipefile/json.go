package recipefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"resincalc/internal/recipe"
)

// isJSONObject reports whether data is a single well-formed JSON object.
// YAML flow mappings such as {a: [[x, 1]]} fail json.Valid and stay on the
// YAML path.
func isJSONObject(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

// jsonDecoder walks a JSON recipe document token by token so recipes keep
// their document order and errors carry a line number.
type jsonDecoder struct {
	dec  *json.Decoder
	data []byte
}

func decodeJSON(data []byte) ([]recipe.Recipe, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	d := &jsonDecoder{dec: dec, data: data}

	if err := d.expectDelim('{', "", "document must map recipe names to component lists"); err != nil {
		return nil, err
	}
	var recipes []recipe.Recipe
	for d.dec.More() {
		name, err := d.str("", "recipe name must be a string")
		if err != nil {
			return nil, err
		}
		r, err := d.recipe(name)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := d.expectDelim('}', "", "document must map recipe names to component lists"); err != nil {
		return nil, err
	}
	return recipes, nil
}

// line returns the line on which the last read token ended. Tokens never
// span lines since JSON strings cannot hold raw newlines.
func (d *jsonDecoder) line() int {
	offset := min(int(d.dec.InputOffset()), len(d.data))
	return 1 + bytes.Count(d.data[:offset], []byte{'\n'})
}

func (d *jsonDecoder) token() (json.Token, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: line %d: %w", ErrFormat, d.line(), err)
	}
	return tok, nil
}

func (d *jsonDecoder) fail(name, message string) error {
	return &FormatError{Line: d.line(), Recipe: name, Message: message}
}

func (d *jsonDecoder) expectDelim(want json.Delim, name, message string) error {
	tok, err := d.token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return d.fail(name, message)
	}
	return nil
}

func (d *jsonDecoder) str(name, message string) (string, error) {
	tok, err := d.token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", d.fail(name, message)
	}
	return s, nil
}

// recipe accepts the same two forms as the YAML path: a list of pairs or
// {"base": n, "components": [...]}.
func (d *jsonDecoder) recipe(name string) (recipe.Recipe, error) {
	r := recipe.Recipe{Name: name}
	tok, err := d.token()
	if err != nil {
		return recipe.Recipe{}, err
	}
	switch tok {
	case json.Delim('['):
		r.Components, err = d.components(name)
		return r, err
	case json.Delim('{'):
	default:
		return recipe.Recipe{}, d.fail(name, "components must be a list of [name, parts] pairs")
	}

	haveComponents := false
	for d.dec.More() {
		key, err := d.str(name, "field name must be a string")
		if err != nil {
			return recipe.Recipe{}, err
		}
		switch key {
		case "components":
			if err := d.expectDelim('[', name, "components must be a list of [name, parts] pairs"); err != nil {
				return recipe.Recipe{}, err
			}
			if r.Components, err = d.components(name); err != nil {
				return recipe.Recipe{}, err
			}
			haveComponents = true
		case "base":
			tok, err := d.token()
			if err != nil {
				return recipe.Recipe{}, err
			}
			n, ok := tok.(json.Number)
			if !ok {
				return recipe.Recipe{}, d.fail(name, "base must be a component index")
			}
			base, err := n.Int64()
			if err != nil {
				return recipe.Recipe{}, d.fail(name, "base must be a component index")
			}
			r.Base = int(base)
		default:
			return recipe.Recipe{}, d.fail(name, fmt.Sprintf("unknown field %q", key))
		}
	}
	if err := d.expectDelim('}', name, "malformed recipe"); err != nil {
		return recipe.Recipe{}, err
	}
	if !haveComponents {
		return recipe.Recipe{}, d.fail(name, "missing components")
	}
	return r, nil
}

// components reads [name, parts] pairs up to the closing bracket of a list
// whose opening bracket was already consumed.
func (d *jsonDecoder) components(name string) ([]recipe.Component, error) {
	out := []recipe.Component{}
	for d.dec.More() {
		if err := d.expectDelim('[', name, "component must be a [name, parts] pair"); err != nil {
			return nil, err
		}
		component, err := d.str(name, "component name must be a string")
		if err != nil {
			return nil, err
		}
		if !d.dec.More() {
			return nil, d.fail(name, "component must be a [name, parts] pair")
		}
		tok, err := d.token()
		if err != nil {
			return nil, err
		}
		n, ok := tok.(json.Number)
		if !ok {
			return nil, d.fail(name, fmt.Sprintf("parts of %q must be a number", component))
		}
		parts, err := n.Float64()
		if err != nil {
			return nil, d.fail(name, fmt.Sprintf("parts of %q must be a number", component))
		}
		if d.dec.More() {
			return nil, d.fail(name, "component must be a [name, parts] pair")
		}
		if err := d.expectDelim(']', name, "component must be a [name, parts] pair"); err != nil {
			return nil, err
		}
		out = append(out, recipe.Component{Name: component, Parts: parts})
	}
	if err := d.expectDelim(']', name, "components must be a list of [name, parts] pairs"); err != nil {
		return nil, err
	}
	return out, nil
}
