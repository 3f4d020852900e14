package recipefile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"resincalc/internal/recipe"
)

//go:embed sample_recipes.json
var sampleRecipes []byte

// Sample returns the bundled example recipe document.
func Sample() []byte {
	out := make([]byte, len(sampleRecipes))
	copy(out, sampleRecipes)
	return out
}

// lastModifiedFormat matches the "// Last modified:" header of hand-kept recipe files.
const lastModifiedFormat = "2006-01-02 15:04:05 -0700"

// Encode writes recipes as a JSON recipe document, preserving their order.
// A non-zero modified time is written as a "// Last modified:" header.
func Encode(w io.Writer, recipes []recipe.Recipe, modified time.Time) error {
	var buf bytes.Buffer
	if !modified.IsZero() {
		fmt.Fprintf(&buf, "// Last modified: %s\n", modified.Format(lastModifiedFormat))
	}
	buf.WriteString("{")
	for i, r := range recipes {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		writeString(&buf, r.Name)
		buf.WriteString(": ")
		if r.Base != 0 {
			fmt.Fprintf(&buf, "{\"base\": %d, \"components\": ", r.Base)
		}
		buf.WriteByte('[')
		for j, c := range r.Components {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString("\n    [")
			writeString(&buf, c.Name)
			buf.WriteString(", ")
			buf.WriteString(strconv.FormatFloat(c.Parts, 'f', -1, 64))
			buf.WriteByte(']')
		}
		buf.WriteString("\n  ]")
		if r.Base != 0 {
			buf.WriteByte('}')
		}
	}
	if len(recipes) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeString(buf *bytes.Buffer, s string) {
	encoded, _ := json.Marshal(s)
	buf.Write(encoded)
}

// WriteFile writes data to path atomically via a temp file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create recipe directory: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Save encodes recipes and writes them to path atomically.
func Save(path string, recipes []recipe.Recipe, modified time.Time) error {
	var buf bytes.Buffer
	if err := Encode(&buf, recipes, modified); err != nil {
		return fmt.Errorf("encode recipes: %w", err)
	}
	return WriteFile(path, buf.Bytes())
}
