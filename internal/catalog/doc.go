// Package catalog publishes the current recipe store to concurrent readers.
//
// A Catalog holds an immutable snapshot behind an atomic pointer. Reload
// builds a complete replacement and swaps it in with a single store, so
// readers never observe a half-loaded recipe set, and a failed reload leaves
// the previous snapshot in place. Watch drives Reload from fsnotify events on
// the recipe file.
package catalog
