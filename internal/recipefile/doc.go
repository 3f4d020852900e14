// Package recipefile reads and writes recipe documents.
//
// A recipe document maps recipe names to ordered lists of [component, parts]
// pairs. It is usually JSON (the historical ~/recepten.json), decoded with an
// encoding/json token stream so keys keep their document order. Anything that
// is not a JSON object is read as YAML through a yaml.v3 node tree. Lines whose first non-blank characters are "//" are
// comments and are blanked before parsing, so reported line numbers still
// match the file. A "// Last modified: <date>" comment is surfaced as load
// metadata.
//
// Parsing only checks document structure. Recipe rules (unique names, positive
// parts, minimum component count) are enforced by recipe.Build, which Load
// calls before handing out a store.
package recipefile
