// Package logging builds slog loggers for Splice with console and JSON
// handlers, standardized field keys, and context-derived attributes.
//
// The console handler prints a compact header line (time, level, component,
// session/item subject, message) followed by indented attribute lines. The
// JSON handler is the stock slog handler with normalized key names. Both
// honor a shared LevelVar so verbosity can change at runtime.
package logging
