// Package textutil provides text helpers for matching recipe and component
// names typed by users against the names stored in a recipe file.
//
// The primary use cases are:
//   - Folding names so lookups ignore case and repeated whitespace
//   - Creating token-based fingerprints of names for comparison
//   - Suggesting the closest known names when a lookup misses
//
// Fingerprints use term frequency vectors. Tokenization folds case, splits on
// non-alphanumeric characters, and drops single-character tokens so product
// codes such as "L20" or "04908" still count.
package textutil
