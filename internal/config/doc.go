// Package config loads, normalizes, and validates resincalc configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the RESINCALC_RECIPES environment
// fallback for the recipe file location. The Config type centralizes where
// recipes come from, how results are rounded and rendered, whether the SQLite
// recipe library is used, and how logs are written.
//
// Always obtain settings through this package so commands receive expanded
// paths, canonical log formats, and clear validation errors.
package config
