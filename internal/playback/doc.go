// Package playback is the synchronization engine at the center of Splice.
//
// Given the timeline's tracks and a moving playhead it decides, frame by
// frame, which media resources should be loaded, actively advancing, or torn
// down; keeps each resource's internal clock within a drift tolerance of the
// playhead; and composites the visible layers onto one output surface in
// stacking order.
//
// The Tracker owns the active-entry map and is the only construction and
// destruction point for resources. The Synchronizer recomputes the desired
// set every pass and reconciles it. The Engine is a three-state machine
// (Stopped, Playing, Paused) whose frame loop runs position update,
// synchronization, and paint in that fixed order; the Scheduler abstraction
// lets tests drive the loop with a virtual clock. Failures on this path
// degrade silently: a missing frame or silent layer, never a halted
// timeline.
package playback
