// Package session ties an open document to its playback engine and edit
// history, and exposes the snapshot the control surfaces report.
package session
