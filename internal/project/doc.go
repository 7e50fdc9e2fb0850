// Package project persists timeline documents and the media-asset catalog
// in SQLite.
//
// Projects store whole documents as JSON keyed by name; assets catalog
// probed media files (duration, dimensions, derived display title) for the
// library surface. Schema changes land as new files under migrations/ and
// apply in lexical order on open. The playback engine never touches this
// package; the daemon mediates between the two.
package project
