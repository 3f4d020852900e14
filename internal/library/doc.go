// Package library persists recipe sets in a local SQLite database.
//
// A library holds exactly one recipe set: Import replaces the whole content
// in a single transaction, and Load rebuilds a validated recipe.Store from
// it. Imports are serialized across processes with a sidecar lock file.
// Computed quantities are never stored.
package library
