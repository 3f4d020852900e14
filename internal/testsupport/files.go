package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// EpikoteDocument is a recipe document with a comment header, a plain recipe
// and a mixture referring to it.
const EpikoteDocument = `// file: recepten.json
// Last modified: 2017-04-28 18:47:52 +0200
{
    "Epikote 04908": [
        ["epikote EPR 04908", 100],
        ["epikure EPH 04908", 30]
    ],
    // fills vertical surfaces
    "Epikote 04908 thickened": [
        ["@Epikote 04908", 130],
        ["aerosil 200", 3]
    ]
}
`

// ArakoteDocument holds two recipes and no date metadata.
const ArakoteDocument = `{
    "Araldite LY 5052": [["araldite LY 5052", 100], ["aradur HY 5052", 38]],
    "Epikote 04908": [["epikote EPR 04908", 100], ["epikure EPH 04908", 30]]
}
`

// WriteRecipeFile writes content to path, creating parent directories.
func WriteRecipeFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
