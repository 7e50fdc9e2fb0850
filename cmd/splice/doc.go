// Package main hosts the Splice CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into IPC calls
// against the daemon: project storage, asset cataloguing, playback transport
// control, and configuration scaffolding. It centralizes configuration
// resolution and socket discovery so subcommands can focus on user
// experience instead of wiring.
package main
