// Package main hosts the resincalc CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, reads the recipe document
// (or the SQLite library) into a recipe store, and renders scaled batches as
// tables or JSON. Rounding and locale formatting happen here and nowhere
// else; the internal packages always work with unrounded masses.
package main
