// Package api defines wire-format types and converters for the IPC and HTTP
// API layer. It translates internal timeline, project, and session models
// into transport-friendly DTOs that browser clients can render without
// coupling to internal types.
//
// # Design Notes
//
// DTOs use camelCase JSON tags for JavaScript/TypeScript consumers. Internal
// enums (timeline.MediaType, playback.State) are exposed as lowercase
// strings. Timestamps use RFC3339 with milliseconds. Document conversion is
// lossless in both directions so a client can round-trip edits through
// ToDocument without the server re-deriving anything.
package api
