// Package daemon coordinates the long-running Splice process.
//
// It wires configuration, project storage, the playback session, and the
// HTTP control surface into a single lifecycle with flock-based locking to
// prevent multiple instances. The daemon owns session open/close, project
// persistence helpers, asset import via ffprobe, and dependency health
// summaries.
//
// Keep orchestration logic here: playback semantics live in the playback and
// session packages while the daemon focuses on startup, shutdown, and high
// level coordination.
package daemon
