// Package logging assembles the slog loggers used by resincalc.
//
// It owns the console and JSON handlers, maps configured levels and outputs
// onto them, and provides a no-op logger for tests and for library code that
// is handed a nil logger. Components tag their lines with NewComponentLogger
// so console output reads "catalog: reloaded recipes ...".
package logging
