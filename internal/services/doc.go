// Package services holds cross-cutting helpers shared by Splice subsystems:
// the sentinel error taxonomy used to classify failures at the API boundary,
// and context plumbing for item, session, and request identifiers that feed
// structured logging.
package services
