package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldName returns a comparison key for a name: Unicode case folding plus
// collapsing of runs of whitespace. "Epikote  04908" and "epikote 04908"
// fold to the same key.
func FoldName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return cases.Fold().String(strings.Join(fields, " "))
}

// EqualFold reports whether two names are equal after folding.
func EqualFold(a, b string) bool {
	return FoldName(a) == FoldName(b)
}
