// Package notifications delivers daemon events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Per-category flags let users mute playback or project chatter
// while keeping error alerts.
//
// Extend this package if you need alternative transports; callers depend only
// on the Service interface.
package notifications
