// Package timeline defines the track and item model the playback engine
// reads: tracks with a viewer-relative stacking order, items with half-open
// active intervals in timeline milliseconds, and whole-project documents as
// exchanged with the API and project store. The engine never mutates these
// values; editing happens upstream and arrives as replacement documents.
package timeline
