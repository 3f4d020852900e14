// Package recipe holds the resin recipe data model and the scaling engine.
//
// A Recipe is an ordered list of components, each with a relative weight in
// parts by weight (pbw). Build validates externally parsed recipes and returns
// an immutable Store; any validation failure rejects the whole input so a
// partially valid store is never observable. Scale converts a recipe into
// absolute masses, either for a requested total batch mass or for a requested
// mass of one component.
//
// Everything here is pure: no I/O, no logging, no shared mutable state. A Store
// may be read from many goroutines, and reloads replace it wholesale (see the
// catalog package) instead of mutating it.
//
// Errors are typed so callers can inspect the offending recipe or component
// with errors.As, and each one also matches one of the category sentinels
// ErrValidation, ErrNotFound or ErrScale with errors.Is.
package recipe
